package index

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/supplyline-io/supplysearch/internal/domain/entity"
	domidx "github.com/supplyline-io/supplysearch/internal/domain/index"
)

// Hash field names of a persisted entry.
const (
	fieldEntityType = "entityType"
	fieldEntityID   = "entityId"
	fieldCollection = "collection"
	fieldText       = "searchableText"
	fieldTokens     = "searchTokens"
	fieldDisplay    = "displayData"
	fieldUpdatedAt  = "updatedAt"
)

func entryToFields(e domidx.Entry) map[string]string {
	display, _ := json.Marshal(e.Display)
	return map[string]string{
		fieldEntityType: e.EntityType,
		fieldEntityID:   e.EntityID,
		fieldCollection: e.Collection,
		fieldText:       e.SearchableText,
		fieldTokens:     strings.Join(e.Tokens, " "),
		fieldDisplay:    string(display),
		fieldUpdatedAt:  strconv.FormatInt(e.UpdatedAt, 10),
	}
}

func entryFromFields(h map[string]string) (domidx.Entry, error) {
	var display entity.DisplayData
	if raw := h[fieldDisplay]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &display); err != nil {
			return domidx.Entry{}, fmt.Errorf("decode display data: %w", err)
		}
	}

	updatedAt, _ := strconv.ParseInt(h[fieldUpdatedAt], 10, 64)

	return domidx.Entry{
		EntityType:     h[fieldEntityType],
		EntityID:       h[fieldEntityID],
		Collection:     h[fieldCollection],
		SearchableText: h[fieldText],
		Tokens:         splitTokens(h[fieldTokens]),
		Display:        display,
		UpdatedAt:      updatedAt,
	}, nil
}

func splitTokens(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
