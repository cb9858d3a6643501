package client

import (
	"context"
	"fmt"
	"sync"
)

// Dashboard fetches and holds one role's dashboard bundle. Sessions are
// bucketed by the server per fetch; the store never re-buckets locally,
// it only reflects the last response plus the registration list it has
// confirmed through its own mutations.
type Dashboard struct {
	api  *Client
	role string

	mu      sync.Mutex
	data    DashboardData
	loading bool
	err     string
}

func NewDashboard(api *Client, role string) *Dashboard {
	return &Dashboard{api: api, role: role}
}

func (d *Dashboard) Data() DashboardData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Dashboard) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Load fetches the role-appropriate bundle. On failure the store keeps
// its previous data and exposes an error string for the caller's retry
// affordance.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	var data DashboardData
	err := d.api.get(ctx, "/api/sessions/"+d.role+"-dashboard", &data)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = "Failed to load dashboard"
		if msg := errMessage(err); msg != "" {
			d.err = msg
		}
		return err
	}
	d.data = data
	d.err = ""
	return nil
}

// Refresh re-runs the initial fetch. Used after any session-mutating
// side effect performed elsewhere (create, edit, cancel, start, end).
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// RegisterForSession books a spot. The local registration list is only
// updated after the server confirms; there is no optimistic state to
// roll back.
func (d *Dashboard) RegisterForSession(ctx context.Context, sessionID uint) ActionResult {
	err := d.api.post(ctx, fmt.Sprintf("/api/sessions/%d/register", sessionID), nil, nil)
	if err != nil {
		message := "Failed to register for session"
		switch StatusOf(err) {
		case 404:
			message = "Session not found. It may have been canceled."
		case 400:
			message = "Unable to register for this session"
			if msg := errMessage(err); msg != "" {
				message = msg
			}
		case 401:
			message = "Please log in to register for sessions"
		}
		return ActionResult{Success: false, Message: message}
	}

	d.mu.Lock()
	d.data.MyRegistrations = append(d.data.MyRegistrations, sessionID)
	d.mu.Unlock()
	return ActionResult{Success: true, Message: "Successfully registered for session!"}
}

func (d *Dashboard) UnregisterFromSession(ctx context.Context, sessionID uint) ActionResult {
	err := d.api.post(ctx, fmt.Sprintf("/api/sessions/%d/unregister", sessionID), nil, nil)
	if err != nil {
		message := "Failed to unregister from session"
		switch StatusOf(err) {
		case 404:
			message = "Session not found. You may already be unregistered."
		case 400:
			message = "Unable to unregister from this session"
			if msg := errMessage(err); msg != "" {
				message = msg
			}
		}
		return ActionResult{Success: false, Message: message}
	}

	d.mu.Lock()
	kept := d.data.MyRegistrations[:0]
	for _, id := range d.data.MyRegistrations {
		if id != sessionID {
			kept = append(kept, id)
		}
	}
	d.data.MyRegistrations = kept
	d.mu.Unlock()
	return ActionResult{Success: true, Message: "Successfully unregistered from session!"}
}

// UpdateWeeklyGoal range-checks before touching the network; an
// out-of-range goal never leaves the process.
func (d *Dashboard) UpdateWeeklyGoal(ctx context.Context, goal int) ActionResult {
	if goal < 1 || goal > 10 {
		return ActionResult{Success: false, Message: "Weekly goal must be between 1 and 10"}
	}

	body := map[string]int{"weeklyGoal": goal}
	err := d.api.put(ctx, "/api/sessions/weekly-goal", body, nil)
	if err != nil {
		message := "Failed to update weekly goal"
		switch StatusOf(err) {
		case 400:
			message = "Invalid weekly goal value"
			if msg := errMessage(err); msg != "" {
				message = msg
			}
		case 401:
			message = "Please log in to update your weekly goal"
		}
		return ActionResult{Success: false, Message: message}
	}

	d.mu.Lock()
	d.data.Stats.WeeklyGoal = goal
	d.data.Stats.WeeklyGoalMet = d.data.Stats.AttendedThisWeek >= goal
	d.mu.Unlock()
	return ActionResult{Success: true, Message: "Weekly goal updated successfully!"}
}

// MarkAttendance posts the present set, then reloads the whole bundle
// rather than merging locally, so the store cannot drift from the
// server's view.
func (d *Dashboard) MarkAttendance(ctx context.Context, sessionID uint, presentIDs []uint) ActionResult {
	if presentIDs == nil {
		presentIDs = []uint{}
	}
	body := map[string][]uint{"presentIds": presentIDs}
	err := d.api.post(ctx, fmt.Sprintf("/api/sessions/%d/attendance", sessionID), body, nil)
	if err != nil {
		message := "Failed to submit attendance"
		if msg := errMessage(err); msg != "" {
			message = msg
		}
		return ActionResult{Success: false, Message: message}
	}

	if err := d.Refresh(ctx); err != nil {
		return ActionResult{Success: true, Message: "Attendance saved, but the dashboard could not be refreshed"}
	}
	return ActionResult{Success: true, Message: "Attendance marked successfully!"}
}

// Roster fetches the attendance sheet for one session.
func (d *Dashboard) Roster(ctx context.Context, sessionID uint) ([]RosterEntry, error) {
	var payload struct {
		AttendanceData []RosterEntry `json:"attendanceData"`
	}
	if err := d.api.get(ctx, fmt.Sprintf("/api/sessions/%d/attendance", sessionID), &payload); err != nil {
		return nil, err
	}
	return payload.AttendanceData, nil
}
