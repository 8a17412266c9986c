package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidActivityStatus(t *testing.T) {
	for _, s := range []ActivityStatus{ActivityPlanned, ActivityOngoing, ActivityCompleted, ActivityCancelled} {
		if !ValidActivityStatus(s) {
			t.Errorf("ValidActivityStatus(%s) = false, want true", s)
		}
	}
	for _, s := range []ActivityStatus{"", "done", "PLANNED", "archived"} {
		if ValidActivityStatus(s) {
			t.Errorf("ValidActivityStatus(%q) = true, want false", s)
		}
	}
}

func TestCoordinatorOf(t *testing.T) {
	schoolID := uuid.New()

	u := User{Role: RoleCoordinator, SchoolID: &schoolID}
	if !u.CoordinatorOf(schoolID) {
		t.Error("coordinator should match their own school")
	}

	admin := User{Role: RoleAdmin, SchoolID: &schoolID}
	if admin.CoordinatorOf(schoolID) {
		t.Error("admins are not coordinators; access is granted elsewhere")
	}

	unattached := User{Role: RoleCoordinator}
	if unattached.CoordinatorOf(schoolID) {
		t.Error("coordinator without a school matches nothing")
	}
}
