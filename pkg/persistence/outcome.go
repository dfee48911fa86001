package persistence

import (
	"time"

	"github.com/lexal/lexal-node/pkg/models"
)

// ApplyResult records a success payload on a stored run.
func ApplyResult(run *models.RunContext, payload map[string]any) {
	run.Result = payload
	run.Error = ""
	run.UpdatedAt = time.Now().UTC()
}

// ApplyError records an error message on a stored run and drops any result.
func ApplyError(run *models.RunContext, message string) {
	run.Result = nil
	run.Error = message
	run.UpdatedAt = time.Now().UTC()
}
