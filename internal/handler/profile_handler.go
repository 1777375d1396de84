package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/fastboard-ai/devprofiler/internal/service"
)

// ProfileHandler exposes the profiling pipeline over HTTP. Analysis runs as
// a background job; callers poll or stream the job for the result.
type ProfileHandler struct {
	profiles *service.ProfileService
	tracker  *JobTracker
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *service.ProfileService, tracker *JobTracker) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, tracker: tracker}
}

// Register sets up profile routes.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Post("/profiles/:username/analyze", h.Analyze)
}

// Analyze starts a profiling job for a username and returns 202 with the
// job id. The pipeline runs to completion in the background; its outcome is
// recorded on the job, never on this response.
func (h *ProfileHandler) Analyze(c fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username required"})
	}

	jobID := uuid.NewString()
	h.tracker.CreateJob(jobID, username)

	go func() {
		h.tracker.SetRunning(jobID)

		stats, err := h.profiles.Analyze(context.Background(), username)
		if err != nil {
			slog.Error("analysis failed", "job_id", jobID, "username", username, "error", err)
			h.tracker.Fail(jobID, err)
			return
		}
		h.tracker.Complete(jobID, stats)
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}
