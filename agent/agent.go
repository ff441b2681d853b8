// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package agent

import (
	"fmt"
	"sync/atomic"
)

// Status is the observable processing state of an agent.
type Status int32

const (
	// StatusIdle means the agent has no work in hand.
	StatusIdle Status = iota
	// StatusProcessing means a Process call is in flight.
	StatusProcessing
	// StatusCompleted means the last Process call succeeded.
	StatusCompleted
	// StatusError means the last Process call failed.
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// Agent is the shared capability of every pipeline processing unit.
// Each concrete agent additionally exposes a typed Process method.
type Agent interface {
	// Name identifies the agent in logs and statistics.
	Name() string

	// Status reports the agent's current processing state.
	// Safe to call concurrently with Process.
	Status() Status
}

// base carries the name and atomically updated status shared by all agents.
type base struct {
	name   string
	status atomic.Int32
}

func (b *base) Name() string { return b.name }

func (b *base) Status() Status { return Status(b.status.Load()) }

func (b *base) setStatus(s Status) { b.status.Store(int32(s)) }

// finish records the terminal status of one Process call.
func (b *base) finish(err error) {
	if err != nil {
		b.setStatus(StatusError)
		return
	}
	b.setStatus(StatusCompleted)
}
