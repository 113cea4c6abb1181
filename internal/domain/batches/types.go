package batches

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	fieldID        = "id"
	fieldBatchID   = "batchId"
	fieldTrainerID = "trainerId"
)

// Record is a training batch. Members other than id and trainerId are kept
// as raw JSON values in Attributes and returned to callers unchanged. A member
// repeated in the input keeps its last value.
type Record struct {
	ID         int                        `json:"id"`
	TrainerID  int                        `json:"trainerId" validate:"gt=0"`
	Attributes map[string]json.RawMessage `json:"-"`
}

// DecodeError reports a request body that is not a valid batch document.
type DecodeError struct {
	Field   string
	Message string
}

func (e DecodeError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// MarshalJSON flattens Attributes next to id and trainerId.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Attributes)+2)
	for key, value := range r.Attributes {
		out[key] = value
	}

	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	trainerID, err := json.Marshal(r.TrainerID)
	if err != nil {
		return nil, err
	}
	out[fieldID] = id
	out[fieldTrainerID] = trainerID

	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return DecodeError{Message: "batch must be a JSON object"}
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return DecodeError{Message: err.Error()}
	}

	decoded := Record{}
	idField := fieldID
	if _, ok := members[fieldID]; !ok {
		idField = fieldBatchID
	}
	if raw, ok := members[idField]; ok {
		id, err := decodeInt(raw)
		if err != nil {
			return DecodeError{Field: idField, Message: err.Error()}
		}
		decoded.ID = id
	}
	delete(members, fieldID)
	delete(members, fieldBatchID)
	if raw, ok := members[fieldTrainerID]; ok {
		trainerID, err := decodeInt(raw)
		if err != nil {
			return DecodeError{Field: fieldTrainerID, Message: err.Error()}
		}
		decoded.TrainerID = trainerID
		delete(members, fieldTrainerID)
	}
	if len(members) > 0 {
		decoded.Attributes = members
	}

	*r = decoded
	return nil
}

// EncodeAttributes renders the pass-through members as a JSON object for storage.
func (r Record) EncodeAttributes() ([]byte, error) {
	if len(r.Attributes) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Attributes)
}

// DecodeAttributes is the inverse of EncodeAttributes. An empty object yields nil.
func DecodeAttributes(data []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("decode batch attributes: %w", err)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, nil
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	return value, nil
}
