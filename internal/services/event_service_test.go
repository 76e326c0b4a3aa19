package services

import (
	"testing"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// EventServiceTestSuite exercises the club event lifecycle end to end:
// posting, review, the feed and RSVPs.
type EventServiceTestSuite struct {
	suite.Suite
	db           *gorm.DB
	clubService  *ClubService
	eventService *EventService
	rsvpService  *RSVPService

	institution *models.User
	advisor     *models.User
	officer     *models.User
	member      *models.User
	club        *models.Club
}

func (suite *EventServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.ClubMember{},
		&models.Event{},
		&models.Tag{},
		&models.EventCheckIn{},
		&models.RSVP{},
	)
	suite.Require().NoError(err)

	clubRepo := repository.NewClubRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	eventRepo := repository.NewEventRepository(suite.db)
	rsvpRepo := repository.NewRSVPRepository(suite.db)

	suite.clubService = NewClubService(clubRepo, userRepo)
	suite.eventService = NewEventService(eventRepo, clubRepo, nil)
	suite.rsvpService = NewRSVPService(rsvpRepo, eventRepo)

	suite.institution = suite.createUser(models.RoleInstitution, models.UserStatusApproved, "admin@parsu.edu.ph", nil)
	suite.advisor = suite.createUser(models.RoleEmployee, models.UserStatusActive, "prof@parsu.edu.ph", &suite.institution.ID)
	suite.officer = suite.createUser(models.RoleStudent, models.UserStatusActive, "officer@parsu.edu.ph", &suite.institution.ID)
	suite.member = suite.createUser(models.RoleStudent, models.UserStatusActive, "member@parsu.edu.ph", &suite.institution.ID)

	club, err := suite.clubService.CreateClub(suite.institutionActor(), CreateClubInput{
		Name: "Robotics Society",
	})
	suite.Require().NoError(err)
	suite.club = club

	_, err = suite.clubService.AssignAdvisor(suite.institutionActor(), club.ID, suite.advisor.ID)
	suite.Require().NoError(err)

	_, err = suite.clubService.JoinClub(suite.actorFor(suite.officer), club.ID)
	suite.Require().NoError(err)
	_, err = suite.clubService.SetMemberRole(suite.actorFor(suite.advisor), club.ID, suite.officer.ID, models.ClubRoleOfficer)
	suite.Require().NoError(err)

	_, err = suite.clubService.JoinClub(suite.actorFor(suite.member), club.ID)
	suite.Require().NoError(err)
}

func (suite *EventServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EventServiceTestSuite) createUser(role models.PlatformRole, status models.UserStatus, email string, institutionID *uint64) *models.User {
	user := &models.User{
		Name:          email,
		Email:         email,
		PasswordHash:  "hash",
		PlatformRole:  role,
		Status:        status,
		InstitutionID: institutionID,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *EventServiceTestSuite) institutionActor() Actor {
	id := suite.institution.ID
	return Actor{ID: id, Role: models.RoleInstitution, InstitutionID: &id}
}

func (suite *EventServiceTestSuite) actorFor(user *models.User) Actor {
	return Actor{ID: user.ID, Role: user.PlatformRole, InstitutionID: user.InstitutionID}
}

func (suite *EventServiceTestSuite) TestOfficerEventEntersPendingQueue() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.officer), suite.club.ID, CreateEventInput{
		Title: "Robot Wars Orientation",
	})
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusPending, event.Status)

	// Pending events are invisible in the feed.
	events, total, err := suite.eventService.ListFeed(suite.actorFor(suite.member), ListFeedInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(events)
}

func (suite *EventServiceTestSuite) TestAdvisorEventStartsApproved() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title: "Faculty Meetup",
	})
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusApproved, event.Status)
}

func (suite *EventServiceTestSuite) TestNonMemberCannotPost() {
	outsider := suite.createUser(models.RoleStudent, models.UserStatusActive, "outsider@parsu.edu.ph", &suite.institution.ID)

	_, err := suite.eventService.CreateClubEvent(suite.actorFor(outsider), suite.club.ID, CreateEventInput{
		Title: "Party Crash",
	})
	suite.Require().ErrorIs(err, ErrNotClubPoster)
}

func (suite *EventServiceTestSuite) TestReviewLifecycle() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.officer), suite.club.ID, CreateEventInput{
		Title: "Robot Wars Orientation",
	})
	suite.Require().NoError(err)

	// The posting officer cannot approve their own event.
	_, err = suite.eventService.TransitionEvent(suite.actorFor(suite.officer), event.ID, models.PostStatusApproved)
	suite.Require().ErrorIs(err, ErrPostTransitionDenied)

	// The advisor can, then publishes.
	approved, err := suite.eventService.TransitionEvent(suite.actorFor(suite.advisor), event.ID, models.PostStatusApproved)
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusApproved, approved.Status)

	published, err := suite.eventService.TransitionEvent(suite.actorFor(suite.advisor), event.ID, models.PostStatusPublished)
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusPublished, published.Status)

	// Published events appear in the feed.
	events, total, err := suite.eventService.ListFeed(suite.actorFor(suite.member), ListFeedInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(events, 1)
	suite.Equal("Robot Wars Orientation", events[0].Title)
}

func (suite *EventServiceTestSuite) TestRestrictedVisibilityHonorsMembership() {
	_, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title:      "Members Only Workshop",
		Visibility: models.VisibilityRestricted,
	})
	suite.Require().NoError(err)

	// A club member sees the restricted event.
	_, total, err := suite.eventService.ListFeed(suite.actorFor(suite.member), ListFeedInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)

	// A student outside the club does not.
	outsider := suite.createUser(models.RoleStudent, models.UserStatusActive, "outsider@parsu.edu.ph", &suite.institution.ID)
	_, total, err = suite.eventService.ListFeed(suite.actorFor(outsider), ListFeedInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
}

func (suite *EventServiceTestSuite) TestGetEventHonorsVisibility() {
	restricted, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title:      "Members Only Workshop",
		Visibility: models.VisibilityRestricted,
	})
	suite.Require().NoError(err)

	// A club member reads it by ID; a student outside the club cannot,
	// even knowing the ID.
	_, err = suite.eventService.GetEvent(suite.actorFor(suite.member), restricted.ID)
	suite.Require().NoError(err)

	outsider := suite.createUser(models.RoleStudent, models.UserStatusActive, "outsider@parsu.edu.ph", &suite.institution.ID)
	_, err = suite.eventService.GetEvent(suite.actorFor(outsider), restricted.ID)
	suite.Require().ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestGetEventHidesPendingFromOutsiders() {
	pending, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.officer), suite.club.ID, CreateEventInput{
		Title: "Not Yet Reviewed",
	})
	suite.Require().NoError(err)

	// The club's own people see their pending post; outsiders do not.
	_, err = suite.eventService.GetEvent(suite.actorFor(suite.member), pending.ID)
	suite.Require().NoError(err)

	outsider := suite.createUser(models.RoleStudent, models.UserStatusActive, "outsider@parsu.edu.ph", &suite.institution.ID)
	_, err = suite.eventService.GetEvent(suite.actorFor(outsider), pending.ID)
	suite.Require().ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestGetEventInstitutionVisibility() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title:      "Campus Week",
		Visibility: models.VisibilityInstitution,
	})
	suite.Require().NoError(err)

	// Any student of the owning institution reads it, even outside the club.
	outsider := suite.createUser(models.RoleStudent, models.UserStatusActive, "outsider@parsu.edu.ph", &suite.institution.ID)
	_, err = suite.eventService.GetEvent(suite.actorFor(outsider), event.ID)
	suite.Require().NoError(err)

	// A student of another institution does not.
	other := suite.createUser(models.RoleInstitution, models.UserStatusApproved, "admin@other.edu.ph", nil)
	foreign := suite.createUser(models.RoleStudent, models.UserStatusActive, "foreign@other.edu.ph", &other.ID)
	_, err = suite.eventService.GetEvent(suite.actorFor(foreign), event.ID)
	suite.Require().ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestDeleteHidesEvent() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title: "Cancelled Meetup",
	})
	suite.Require().NoError(err)

	// An actor with no standing with the club learns nothing, not even
	// that the event exists.
	other := suite.createUser(models.RoleInstitution, models.UserStatusApproved, "admin@other.edu.ph", nil)
	foreign := suite.createUser(models.RoleStudent, models.UserStatusActive, "foreign@other.edu.ph", &other.ID)
	err = suite.eventService.DeleteEvent(suite.actorFor(foreign), event.ID)
	suite.Require().ErrorIs(err, ErrEventNotFound)

	// A plain member has standing but no delete capability.
	err = suite.eventService.DeleteEvent(suite.actorFor(suite.member), event.ID)
	suite.Require().ErrorIs(err, ErrPostDeleteDenied)

	// The officer can; the event then answers not found.
	suite.Require().NoError(suite.eventService.DeleteEvent(suite.actorFor(suite.officer), event.ID))

	_, err = suite.eventService.GetEvent(suite.actorFor(suite.officer), event.ID)
	suite.Require().ErrorIs(err, ErrEventNotFound)

	// The row survives as hidden rather than being removed.
	var stored models.Event
	suite.Require().NoError(suite.db.First(&stored, event.ID).Error)
	suite.Equal(models.PostStatusHidden, stored.Status)
}

func (suite *EventServiceTestSuite) TestRSVPFlow() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.advisor), suite.club.ID, CreateEventInput{
		Title: "Robot Wars Finals",
	})
	suite.Require().NoError(err)

	memberActor := suite.actorFor(suite.member)

	// No row yet.
	mine, err := suite.rsvpService.Mine(memberActor, event.ID)
	suite.Require().NoError(err)
	suite.Nil(mine)

	rsvp, err := suite.rsvpService.SetRSVP(memberActor, event.ID, models.RSVPInterested)
	suite.Require().NoError(err)
	suite.Equal(models.RSVPInterested, rsvp.State)

	// Flipping the state keeps a single row per (user, event).
	rsvp, err = suite.rsvpService.SetRSVP(memberActor, event.ID, models.RSVPGoing)
	suite.Require().NoError(err)
	suite.Equal(models.RSVPGoing, rsvp.State)

	mine, err = suite.rsvpService.Mine(memberActor, event.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(mine)
	suite.Equal(models.RSVPGoing, mine.State)

	counts, err := suite.rsvpService.Counts(event.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), counts.Going)
	suite.Equal(int64(0), counts.Interested)
	suite.Equal(int64(0), counts.CheckedIn)

	// Clearing twice is fine.
	suite.Require().NoError(suite.rsvpService.ClearRSVP(memberActor, event.ID))
	suite.Require().NoError(suite.rsvpService.ClearRSVP(memberActor, event.ID))

	counts, err = suite.rsvpService.Counts(event.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), counts.Going)
}

func (suite *EventServiceTestSuite) TestRSVPRejectsPendingEvent() {
	event, err := suite.eventService.CreateClubEvent(suite.actorFor(suite.officer), suite.club.ID, CreateEventInput{
		Title: "Not Yet Reviewed",
	})
	suite.Require().NoError(err)

	_, err = suite.rsvpService.SetRSVP(suite.actorFor(suite.member), event.ID, models.RSVPGoing)
	suite.Require().ErrorIs(err, ErrEventNotOpen)

	_, err = suite.rsvpService.SetRSVP(suite.actorFor(suite.member), event.ID, models.RSVPState("maybe"))
	suite.Require().ErrorIs(err, ErrInvalidRSVPState)
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
