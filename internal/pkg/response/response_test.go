package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthealth/internal/core/domain"
)

func statusForError(t *testing.T, err error) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FromDomainError(c, err, "something broke")
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"department closed", domain.ErrDepartmentClosed, fiber.StatusBadRequest},
		{"no waiting token", domain.ErrNoWaitingToken, fiber.StatusBadRequest},
		{"token not found", domain.ErrTicketNotFound, fiber.StatusNotFound},
		{"patient not found", domain.ErrPatientNotFound, fiber.StatusNotFound},
		{"appointment not found", domain.ErrAppointmentNotFound, fiber.StatusNotFound},
		{"queue full", domain.ErrQueueFull, fiber.StatusConflict},
		{"invalid transition", domain.ErrInvalidTransition, fiber.StatusConflict},
		{"duplicate user", domain.ErrUserAlreadyExists, fiber.StatusConflict},
		{"bad credentials", domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden},
		{"unknown error", errors.New("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := statusForError(t, tc.err)
			assert.Equal(t, tc.want, status)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}

	// Unknown errors never leak internals; the fallback message is returned.
	_, body := statusForError(t, errors.New("disk on fire"))
	assert.Equal(t, "something broke", body.Error)
}
