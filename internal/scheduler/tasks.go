package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCompanyEnrich = "company.enrich"

type CompanyEnrichPayload struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
}

func NewCompanyEnrichTask(payload CompanyEnrichPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCompanyEnrich, data), nil
}

func ParseCompanyEnrichPayload(task *asynq.Task) (CompanyEnrichPayload, error) {
	var payload CompanyEnrichPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CompanyEnrichPayload{}, err
	}
	return payload, nil
}
