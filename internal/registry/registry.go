package registry

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"complaintdesk/internal/metrics"
)

// Registry tracks which connections belong to which broadcast groups.
// ARCHITECTURAL DISCOVERY: Only connection ids are stored; the transport pool
// owns the connections themselves, so the registry can never keep a socket alive
type Registry struct {
	mu      sync.RWMutex                   // guards both indexes together
	groups  map[string]map[string]struct{} // group -> connection ids
	members map[string]map[string]struct{} // connection id -> groups
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// Stats is a point-in-time summary of registry state.
type Stats struct {
	Groups      int `json:"groups"`
	Connections int `json:"connections"`
	Memberships int `json:"memberships"`
}

// New creates an empty registry. m may be nil.
func New(m *metrics.Metrics, logger zerolog.Logger) *Registry {
	return &Registry{
		groups:  make(map[string]map[string]struct{}),
		members: make(map[string]map[string]struct{}),
		metrics: m,
		logger:  logger.With().Str("component", "registry").Logger(),
	}
}

// Join adds connID to group, creating the group on first join.
// Joining twice has the same effect as joining once.
func (r *Registry) Join(group, connID string) {
	if group == "" || connID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.groups[group]
	if !ok {
		set = make(map[string]struct{})
		r.groups[group] = set
	}
	set[connID] = struct{}{}

	joined, ok := r.members[connID]
	if !ok {
		joined = make(map[string]struct{})
		r.members[connID] = joined
	}
	joined[group] = struct{}{}

	r.metrics.SetGroupMembers(group, len(set))
}

// Leave removes connID from group. Leaving a group the connection is not in
// is a no-op. Groups with no members are dropped.
func (r *Registry) Leave(group, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(group, connID)
}

// PurgeConnection removes connID from every group it joined and returns
// those groups. Unknown ids return nil.
func (r *Registry) PurgeConnection(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.members[connID]
	if !ok {
		return nil
	}

	groups := sortedKeys(joined)
	for _, group := range groups {
		r.removeLocked(group, connID)
	}

	r.logger.Debug().Str("conn_id", connID).Strs("groups", groups).Msg("purged connection")
	return groups
}

// MembersOf returns a snapshot of the connection ids in group. The returned
// slice is owned by the caller.
func (r *Registry) MembersOf(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.groups[group])
}

// GroupsOf returns the groups connID currently belongs to.
func (r *Registry) GroupsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.members[connID])
}

// IsMember reports whether connID is in group.
func (r *Registry) IsMember(group, connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.groups[group][connID]
	return ok
}

// Stats returns counts for health reporting.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memberships := lo.SumBy(lo.Values(r.groups), func(set map[string]struct{}) int {
		return len(set)
	})
	return Stats{
		Groups:      len(r.groups),
		Connections: len(r.members),
		Memberships: memberships,
	}
}

func (r *Registry) removeLocked(group, connID string) {
	set, ok := r.groups[group]
	if !ok {
		return
	}
	if _, ok := set[connID]; !ok {
		return
	}

	delete(set, connID)
	if len(set) == 0 {
		delete(r.groups, group)
	}
	r.metrics.SetGroupMembers(group, len(set))

	if joined, ok := r.members[connID]; ok {
		delete(joined, group)
		if len(joined) == 0 {
			delete(r.members, connID)
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := lo.Keys(set)
	sort.Strings(keys)
	return keys
}
