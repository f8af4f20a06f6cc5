package hubspot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Associations creates typed, directional links between resolved CRM
// entities. Every call is fire-and-log: a failed direction never raises to
// the caller and never blocks the opposite direction. The CRM deduplicates
// repeated association writes, so retried calls are idempotent.
type Associations struct {
	client *Client
	log    *logger.Logger
}

// NewAssociations creates an association manager on top of the shared client.
func NewAssociations(client *Client, log *logger.Logger) *Associations {
	return &Associations{client: client, log: log}
}

// Associate writes one direction of a link. Returns true when the CRM
// accepted the call.
func (a *Associations) Associate(ctx context.Context, fromType, toType, fromID, toID, semanticType string) bool {
	if fromID == "" || toID == "" {
		a.log.CRMWriteSkipped("associate "+semanticType, "missing entity identifier")
		return false
	}

	endpoint := fmt.Sprintf("/crm/v3/associations/%s/%s/batch/create", fromType, toType)
	req := batchAssociationRequest{
		Inputs: []batchAssociationInput{{
			From: associationTarget{ID: fromID},
			To:   associationTarget{ID: toID},
			Type: semanticType,
		}},
	}

	resp, err := a.client.Do(ctx, http.MethodPost, endpoint, nil, req)
	if err != nil {
		a.log.Warn("association call failed", "type", semanticType, "from", fromID, "to", toID, "error", err.Error())
		return false
	}
	if !resp.OK() {
		a.log.Warn("association rejected", "type", semanticType, "from", fromID, "to", toID, "status", resp.StatusCode)
		return false
	}

	a.log.Info("association created", "type", semanticType, "from", fromID, "to", toID)
	return true
}

// LinkBoth writes a pair of associations, one per direction, as two
// independent calls.
func (a *Associations) LinkBoth(ctx context.Context, typeA, typeB, idA, idB, semanticAB, semanticBA string) {
	a.Associate(ctx, typeA, typeB, idA, idB, semanticAB)
	a.Associate(ctx, typeB, typeA, idB, idA, semanticBA)
}
