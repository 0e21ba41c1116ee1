package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskProvisioningBackfill re-runs the provisioning pipeline for a lead after
// a failed step. Safe to deliver more than once: the pipeline is idempotent
// by inspection.
const TaskProvisioningBackfill = "provisioning.backfill"

type ProvisioningBackfillPayload struct {
	LeadID string `json:"leadId"`
}

func NewProvisioningBackfillTask(payload ProvisioningBackfillPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProvisioningBackfill, data), nil
}

func ParseProvisioningBackfillPayload(task *asynq.Task) (ProvisioningBackfillPayload, error) {
	var payload ProvisioningBackfillPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProvisioningBackfillPayload{}, err
	}
	return payload, nil
}
