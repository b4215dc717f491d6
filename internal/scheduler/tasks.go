package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskGenerateAffidavit = "affidavits.generate"

const TaskReconcileJobs = "jobs.reconcile"

type GenerateAffidavitPayload struct {
	AffidavitID string `json:"affidavitId"`
	TenantID    string `json:"tenantId"`
}

// ReconcileJobsPayload limits a sweep to one company; empty means all.
type ReconcileJobsPayload struct {
	TenantID string `json:"tenantId,omitempty"`
}

func NewGenerateAffidavitTask(payload GenerateAffidavitPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateAffidavit, data), nil
}

func ParseGenerateAffidavitPayload(task *asynq.Task) (GenerateAffidavitPayload, error) {
	var payload GenerateAffidavitPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GenerateAffidavitPayload{}, err
	}
	return payload, nil
}

func NewReconcileJobsTask(payload ReconcileJobsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReconcileJobs, data), nil
}

func ParseReconcileJobsPayload(task *asynq.Task) (ReconcileJobsPayload, error) {
	var payload ReconcileJobsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReconcileJobsPayload{}, err
	}
	return payload, nil
}
