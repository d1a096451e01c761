// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tex

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Registry maps integer asset ids to live textures. It is an explicit,
// ownership-tracked object passed by reference into simulations; resolving
// an id that was never registered, or was dropped, yields an error
type Registry struct {
	mu      sync.Mutex
	entries map[int]Texture
	next    int
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]Texture)}
}

// Register stores a texture and returns its id
func (o *Registry) Register(t Texture) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.next
	o.next++
	o.entries[id] = t
	return id
}

// Get resolves an id to a live texture
func (o *Registry) Get(id int) (Texture, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.entries[id]
	if !ok {
		return nil, chk.Err("tex: asset id %d is not registered or has expired", id)
	}
	return t, nil
}

// Drop releases a texture; subsequent Get calls with this id fail
func (o *Registry) Drop(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, id)
}
