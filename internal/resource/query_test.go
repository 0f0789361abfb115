package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Matches(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		filter Filter
		input  string
		want   bool
	}{
		{"exact hit", ByName("airline-redshift-nlb"), "airline-redshift-nlb", true},
		{"exact miss", ByName("airline-redshift-nlb"), "airline-redshift-nlb-2", false},
		{"contains hit", Containing("airline"), "dev-airline-nlb", true},
		{"contains miss", Containing("airline"), "retail-nlb", false},
		{"any", Under("vpc-1"), "whatever", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Matches(tt.input))
		})
	}
}

func TestResult_Empty(t *testing.T) {
	t.Parallel()
	assert.True(t, Absent().Empty())
	assert.True(t, Found().Empty())
	assert.False(t, Found(Resource{Name: "x"}).Empty())
}

func TestResource_StatusHelpers(t *testing.T) {
	t.Parallel()
	r := Resource{Status: "active_impaired"}
	assert.True(t, r.StatusIs(StatusActiveImpaired))
	assert.False(t, r.Transitional())

	assert.True(t, Resource{Status: "CREATING"}.Transitional())
	assert.True(t, Resource{Status: "modifying"}.Transitional())
	assert.True(t, Resource{Status: "DELETING"}.Deleting())
	assert.Equal(t, "", Resource{}.Attr(AttrDNSName))
}

func TestParseFamily(t *testing.T) {
	t.Parallel()
	f, ok := ParseFamily("load-balancer")
	assert.True(t, ok)
	assert.Equal(t, FamilyLoadBalancer, f)

	_, ok = ParseFamily("bogus")
	assert.False(t, ok)
	assert.True(t, FamilyWorkgroups.IsCluster())
	assert.False(t, FamilyEndpoints.IsCluster())
}
