package services

import (
	"errors"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/workflow"
	"gorm.io/gorm"
)

// Actor is the resolved session identity every protected operation receives.
// For institution accounts InstitutionID equals ID; for students and
// employees it is their enrolled institution, when any.
type Actor struct {
	ID            uint64
	Role          models.PlatformRole
	InstitutionID *uint64
}

// ownsInstitution reports whether the actor is staff of the institution.
func (a Actor) ownsInstitution(institutionID uint64) bool {
	return a.Role == models.RoleInstitution && a.ID == institutionID
}

// clubCapabilities resolves what the actor is relative to a club: platform
// role, advisor edge, then membership role. The zero result means the actor
// has no standing with the club at all.
func clubCapabilities(clubRepo repository.ClubRepository, actor Actor, club *models.Club) ([]workflow.Capability, error) {
	var caps []workflow.Capability

	if actor.Role == models.RoleSuperAdmin {
		caps = append(caps, workflow.CapSuperAdmin)
	}
	if actor.ownsInstitution(club.InstitutionID) {
		caps = append(caps, workflow.CapInstitutionStaff)
	}
	if club.AdvisorID != nil && *club.AdvisorID == actor.ID {
		caps = append(caps, workflow.CapClubAdvisor)
	}

	member, err := clubRepo.FindMember(club.ID, actor.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		switch member.Role {
		case models.ClubRoleOfficer:
			caps = append(caps, workflow.CapClubOfficer)
		default:
			caps = append(caps, workflow.CapClubMember)
		}
	}

	return caps, nil
}
