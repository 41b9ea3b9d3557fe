package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"caredesk/models"
)

// PatientsWithAppointments fetches the full patient collection with every
// patient's appointments and payment sub-records embedded.
func (c *Client) PatientsWithAppointments(ctx context.Context, token string) ([]models.Patient, error) {
	env, err := c.do(ctx, "patients fetch", http.MethodGet, "/api/appointments/with-appointments", token, nil)
	if err != nil {
		return nil, err
	}

	var patients []models.Patient
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &patients); err != nil {
			return nil, fmt.Errorf("failed to decode patient list: %w", err)
		}
	}
	return patients, nil
}

// ProcessPayment submits one allocation covering the selected appointments.
// The backend applies it to its ledger; callers must re-fetch afterwards
// rather than patching local state.
func (c *Client) ProcessPayment(ctx context.Context, token string, req models.AllocationRequest) error {
	_, err := c.do(ctx, "payment", http.MethodPost, "/api/appointments/process-payment", token, req)
	return err
}

// UpcomingAppointments fetches the upcoming appointment list for the
// scheduling page.
func (c *Client) UpcomingAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	env, err := c.do(ctx, "upcoming appointments", http.MethodGet, "/api/appointments/upcoming", token, nil)
	if err != nil {
		return nil, err
	}

	var appts []models.Appointment
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &appts); err != nil {
			return nil, fmt.Errorf("failed to decode appointment list: %w", err)
		}
	}
	return appts, nil
}

// Appointments fetches the complete appointment list.
func (c *Client) Appointments(ctx context.Context, token string) ([]models.Appointment, error) {
	env, err := c.do(ctx, "appointments", http.MethodGet, "/api/appointments", token, nil)
	if err != nil {
		return nil, err
	}

	var appts []models.Appointment
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &appts); err != nil {
			return nil, fmt.Errorf("failed to decode appointment list: %w", err)
		}
	}
	return appts, nil
}

// UpdateAppointmentStatus transitions an appointment's status. The backend
// owns the transition rules; invalid transitions come back as AppError.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, token, appointmentID, status string) error {
	body := map[string]string{"status": status}
	_, err := c.do(ctx, "status update", http.MethodPut, "/api/appointments/"+appointmentID+"/status", token, body)
	return err
}

// RegisterPatient creates a new patient record.
func (c *Client) RegisterPatient(ctx context.Context, token string, payload map[string]any) error {
	_, err := c.do(ctx, "patient registration", http.MethodPost, "/api/patients/register", token, payload)
	return err
}

// Login exchanges operator credentials for an upstream bearer token and the
// user-details blob the dashboard displays.
func (c *Client) Login(ctx context.Context, email, password string) (string, json.RawMessage, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return "", nil, err
	}
	if env.Token == "" {
		return "", nil, &AppError{Op: "login", Message: "no token in login response"}
	}
	return env.Token, env.User, nil
}
