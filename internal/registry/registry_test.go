package registry

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintdesk/internal/metrics"
)

const room = "admin-room"

func newTestRegistry() *Registry {
	return New(nil, zerolog.Nop())
}

func TestJoinIsIdempotent(t *testing.T) {
	r := newTestRegistry()

	r.Join(room, "c1")
	r.Join(room, "c1")

	assert.Equal(t, []string{"c1"}, r.MembersOf(room))
	assert.Equal(t, Stats{Groups: 1, Connections: 1, Memberships: 1}, r.Stats())
}

func TestLeaveIsIdempotent(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")
	r.Join(room, "c2")

	r.Leave(room, "c1")
	r.Leave(room, "c1")
	r.Leave(room, "never-joined")
	r.Leave("no-such-group", "c2")

	assert.Equal(t, []string{"c2"}, r.MembersOf(room))
}

func TestEmptyGroupIsDropped(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")
	r.Leave(room, "c1")

	assert.Empty(t, r.MembersOf(room))
	assert.Equal(t, Stats{}, r.Stats())
}

func TestPurgeRemovesFromEveryGroup(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")
	r.Join("station-ops", "c1")
	r.Join(room, "c2")

	groups := r.PurgeConnection("c1")

	assert.Equal(t, []string{room, "station-ops"}, groups)
	assert.Equal(t, []string{"c2"}, r.MembersOf(room))
	assert.Empty(t, r.MembersOf("station-ops"))
	assert.Empty(t, r.GroupsOf("c1"))
	assert.False(t, r.IsMember(room, "c1"))
}

func TestPurgeUnknownConnectionIsNoop(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")

	assert.Nil(t, r.PurgeConnection("ghost"))
	assert.Nil(t, r.PurgeConnection(""))
	assert.Equal(t, []string{"c1"}, r.MembersOf(room))
}

func TestMembersOfReturnsIndependentSnapshot(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")
	r.Join(room, "c2")

	snap := r.MembersOf(room)
	snap[0] = "tampered"
	snap = append(snap, "c3")

	assert.Equal(t, []string{"c1", "c2"}, r.MembersOf(room))

	r.Join(room, "c4")
	assert.Len(t, snap, 3, "earlier snapshot must not see later joins")
}

func TestGroupsOf(t *testing.T) {
	r := newTestRegistry()
	r.Join("b", "c1")
	r.Join("a", "c1")

	assert.Equal(t, []string{"a", "b"}, r.GroupsOf("c1"))
	assert.Nil(t, r.GroupsOf("c2"))
}

func TestJoinIgnoresEmptyArguments(t *testing.T) {
	r := newTestRegistry()
	r.Join("", "c1")
	r.Join(room, "")
	assert.Equal(t, Stats{}, r.Stats())
}

// Purge before each connection is discarded leaves nothing behind, whatever
// the interleaving of joins and leaves.
func TestNoDanglingMembershipUnderConcurrency(t *testing.T) {
	r := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("c%d", n)
			for j := 0; j < 20; j++ {
				r.Join(room, id)
				_ = r.MembersOf(room)
				if j%3 == 0 {
					r.Leave(room, id)
				}
			}
			r.PurgeConnection(id)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, r.MembersOf(room))
	assert.Equal(t, Stats{}, r.Stats())
}

// A connection that joins and then drops mid-stream is never a member again.
func TestAbruptDisconnectMidStream(t *testing.T) {
	r := newTestRegistry()
	r.Join(room, "c1")
	r.Join(room, "c2")

	before := r.MembersOf(room)
	r.PurgeConnection("c1")
	after := r.MembersOf(room)

	assert.Equal(t, []string{"c1", "c2"}, before)
	assert.Equal(t, []string{"c2"}, after)
}

func TestGroupMembersGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(metrics.MustNewMetrics(reg), zerolog.Nop())

	r.Join(room, "c1")
	r.Join(room, "c2")
	r.Leave(room, "c1")

	expected := `
# HELP complaintdesk_registry_group_members Number of connections joined to each group.
# TYPE complaintdesk_registry_group_members gauge
complaintdesk_registry_group_members{group="admin-room"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "complaintdesk_registry_group_members"))

	r.PurgeConnection("c2")
	expected = `
# HELP complaintdesk_registry_group_members Number of connections joined to each group.
# TYPE complaintdesk_registry_group_members gauge
complaintdesk_registry_group_members{group="admin-room"} 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "complaintdesk_registry_group_members"))
}
