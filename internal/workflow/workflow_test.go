package workflow

import (
	"testing"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		from    string
		to      string
		caps    []Capability
		allowed bool
	}{
		{
			name:    "super admin approves pending institution",
			entity:  EntityInstitution,
			from:    string(models.UserStatusPending),
			to:      string(models.UserStatusApproved),
			caps:    []Capability{CapSuperAdmin},
			allowed: true,
		},
		{
			name:    "institution staff cannot approve institutions",
			entity:  EntityInstitution,
			from:    string(models.UserStatusPending),
			to:      string(models.UserStatusApproved),
			caps:    []Capability{CapInstitutionStaff},
			allowed: false,
		},
		{
			name:    "approved institution cannot be approved again",
			entity:  EntityInstitution,
			from:    string(models.UserStatusApproved),
			to:      string(models.UserStatusApproved),
			caps:    []Capability{CapSuperAdmin},
			allowed: false,
		},
		{
			name:    "institution staff approves pending club",
			entity:  EntityClub,
			from:    string(models.ClubStatusPending),
			to:      string(models.ClubStatusApproved),
			caps:    []Capability{CapInstitutionStaff},
			allowed: true,
		},
		{
			name:    "club member cannot approve a club",
			entity:  EntityClub,
			from:    string(models.ClubStatusPending),
			to:      string(models.ClubStatusApproved),
			caps:    []Capability{CapClubMember},
			allowed: false,
		},
		{
			name:    "staff reinstates a suspended club",
			entity:  EntityClub,
			from:    string(models.ClubStatusSuspended),
			to:      string(models.ClubStatusApproved),
			caps:    []Capability{CapInstitutionStaff},
			allowed: true,
		},
		{
			name:    "advisor approves pending post",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPending),
			to:      string(models.PostStatusApproved),
			caps:    []Capability{CapClubAdvisor},
			allowed: true,
		},
		{
			name:    "officer cannot approve own pending post",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPending),
			to:      string(models.PostStatusApproved),
			caps:    []Capability{CapClubOfficer},
			allowed: false,
		},
		{
			name:    "advisor publishes approved post",
			entity:  EntityClubPost,
			from:    string(models.PostStatusApproved),
			to:      string(models.PostStatusPublished),
			caps:    []Capability{CapClubAdvisor},
			allowed: true,
		},
		{
			name:    "officer hides a published post via wildcard",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPublished),
			to:      string(models.PostStatusHidden),
			caps:    []Capability{CapClubOfficer},
			allowed: true,
		},
		{
			name:    "plain member cannot hide a post",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPublished),
			to:      string(models.PostStatusHidden),
			caps:    []Capability{CapClubMember},
			allowed: false,
		},
		{
			name:    "no capabilities at all",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPending),
			to:      string(models.PostStatusApproved),
			caps:    nil,
			allowed: false,
		},
		{
			name:    "one matching capability among several",
			entity:  EntityClubPost,
			from:    string(models.PostStatusPending),
			to:      string(models.PostStatusApproved),
			caps:    []Capability{CapClubMember, CapClubAdvisor},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Allowed(tt.entity, tt.from, tt.to, tt.caps...))
		})
	}
}

func TestClubCreationStatus(t *testing.T) {
	assert.Equal(t, models.ClubStatusApproved, ClubCreationStatus(CapInstitutionStaff))
	assert.Equal(t, models.ClubStatusApproved, ClubCreationStatus(CapSuperAdmin))
	assert.Equal(t, models.ClubStatusPending, ClubCreationStatus())
	assert.Equal(t, models.ClubStatusPending, ClubCreationStatus(CapClubMember))
}

func TestClubPostCreationStatus(t *testing.T) {
	assert.Equal(t, models.PostStatusApproved, ClubPostCreationStatus(CapClubAdvisor))
	assert.Equal(t, models.PostStatusApproved, ClubPostCreationStatus(CapInstitutionStaff))
	assert.Equal(t, models.PostStatusPending, ClubPostCreationStatus(CapClubOfficer))
	assert.Equal(t, models.PostStatusPending, ClubPostCreationStatus(CapClubMember))
}

func TestCanDeleteClubPost(t *testing.T) {
	assert.True(t, CanDeleteClubPost(CapClubAdvisor))
	assert.True(t, CanDeleteClubPost(CapClubOfficer))
	assert.True(t, CanDeleteClubPost(CapInstitutionStaff))
	assert.False(t, CanDeleteClubPost(CapClubMember))
	assert.False(t, CanDeleteClubPost())
}

func TestCanPostToClub(t *testing.T) {
	assert.True(t, CanPostToClub(CapClubMember))
	assert.True(t, CanPostToClub(CapClubOfficer))
	assert.True(t, CanPostToClub(CapClubAdvisor))
	assert.False(t, CanPostToClub())
}
