// Package workflow centralizes the role-gated status transitions that were
// previously re-implemented inside every handler. Services resolve the
// actor's capabilities against the store, then consult the single table
// here before flipping an entity's status.
package workflow

import "github.com/rbgonzales/campus-engagement-api/internal/models"

type Entity string

const (
	EntityInstitution Entity = "institution"
	EntityClub        Entity = "club"
	// EntityClubPost covers both events and announcements owned by a club.
	EntityClubPost Entity = "club_post"
)

// Capability is what an actor is, relative to the entity being transitioned.
type Capability string

const (
	CapSuperAdmin       Capability = "super_admin"
	CapInstitutionStaff Capability = "institution_staff"
	CapClubAdvisor      Capability = "club_advisor"
	CapClubOfficer      Capability = "club_officer"
	CapClubMember       Capability = "club_member"
)

// AnyState matches every From state in the transition table.
const AnyState = "*"

type transition struct {
	Entity   Entity
	From, To string
}

var transitions = map[transition][]Capability{
	{EntityInstitution, string(models.UserStatusPending), string(models.UserStatusApproved)}: {CapSuperAdmin},
	{EntityInstitution, string(models.UserStatusPending), string(models.UserStatusRejected)}: {CapSuperAdmin},

	{EntityClub, string(models.ClubStatusPending), string(models.ClubStatusApproved)}:    {CapSuperAdmin, CapInstitutionStaff},
	{EntityClub, string(models.ClubStatusPending), string(models.ClubStatusSuspended)}:   {CapSuperAdmin, CapInstitutionStaff},
	{EntityClub, string(models.ClubStatusApproved), string(models.ClubStatusSuspended)}:  {CapSuperAdmin, CapInstitutionStaff},
	{EntityClub, string(models.ClubStatusSuspended), string(models.ClubStatusApproved)}:  {CapSuperAdmin, CapInstitutionStaff},

	{EntityClubPost, string(models.PostStatusPending), string(models.PostStatusApproved)}:    {CapClubAdvisor, CapInstitutionStaff},
	{EntityClubPost, string(models.PostStatusPending), string(models.PostStatusRejected)}:    {CapClubAdvisor, CapInstitutionStaff},
	{EntityClubPost, string(models.PostStatusApproved), string(models.PostStatusPublished)}:  {CapClubAdvisor, CapInstitutionStaff},
	{EntityClubPost, AnyState, string(models.PostStatusHidden)}:                              {CapClubAdvisor, CapClubOfficer, CapInstitutionStaff},
}

// Allowed reports whether any of the actor's capabilities permits the
// transition from -> to on the given entity kind.
func Allowed(entity Entity, from, to string, caps ...Capability) bool {
	allowed, ok := transitions[transition{entity, from, to}]
	if !ok {
		allowed, ok = transitions[transition{entity, AnyState, to}]
	}
	if !ok {
		return false
	}
	for _, have := range caps {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ClubCreationStatus is the status a new club starts in: institution staff
// and super admins create clubs approved, student self-service enters the
// pending queue.
func ClubCreationStatus(caps ...Capability) models.ClubStatus {
	for _, c := range caps {
		if c == CapSuperAdmin || c == CapInstitutionStaff {
			return models.ClubStatusApproved
		}
	}
	return models.ClubStatusPending
}

// ClubPostCreationStatus is the status a new club event/announcement starts
// in. Advisors and institution staff post approved; officers and plain
// members enter the pending queue. The caller's request never chooses.
func ClubPostCreationStatus(caps ...Capability) models.PostStatus {
	for _, c := range caps {
		if c == CapClubAdvisor || c == CapInstitutionStaff || c == CapSuperAdmin {
			return models.PostStatusApproved
		}
	}
	return models.PostStatusPending
}

// CanPostToClub reports whether the actor may create a post for the club at
// all: any membership, the advisor, or institution staff.
func CanPostToClub(caps ...Capability) bool {
	for _, c := range caps {
		switch c {
		case CapClubAdvisor, CapClubOfficer, CapClubMember, CapInstitutionStaff, CapSuperAdmin:
			return true
		}
	}
	return false
}

// CanDeleteClubPost reports whether the actor may hide a club post: advisor,
// officer, or the owning institution's staff. Plain members cannot.
func CanDeleteClubPost(caps ...Capability) bool {
	for _, c := range caps {
		switch c {
		case CapClubAdvisor, CapClubOfficer, CapInstitutionStaff, CapSuperAdmin:
			return true
		}
	}
	return false
}
