package batches

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	require.NoError(t, ValidateRecord(Record{TrainerID: 7}))

	err := ValidateRecord(Record{TrainerID: 0})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "trainerId", validationErr.Field)
	require.Equal(t, "must be greater than 0", validationErr.Message)

	require.ErrorAs(t, ValidateRecord(Record{TrainerID: -3}), &validationErr)
}
