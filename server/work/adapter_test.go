package work

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerform(t *testing.T) {
	workerPool := NewWorkerAdapter("UTC")
	outputBuffer := new(bytes.Buffer)

	// Register job function
	writeToBuffer := func(m map[string]interface{}) error {
		_, err := outputBuffer.WriteString("Hello")
		return err
	}
	assert.Nil(t, workerPool.Register("write_to_buffer", writeToBuffer))

	workerPool.Start()

	err := workerPool.Perform(JobParams{
		Name:    "write_to_buffer",
		Handler: "write_to_buffer",
		Args:    map[string]interface{}{},
	})
	assert.Nil(t, err)

	// Wait for job to be processed
	time.Sleep(1 * time.Second)

	workerPool.Stop()

	assert.Equal(t, "Hello", outputBuffer.String(), "Expected job to write to outputBuffer")
}

func TestPerformWithUnknownHandler(t *testing.T) {
	workerPool := NewWorkerAdapter("UTC")

	err := workerPool.Perform(JobParams{Name: "ghost", Handler: "ghost"})
	assert.NotNil(t, err, "Enqueuing a job with no registered handler should fail")
}

func TestRegisterRejectsDuplicateHandlers(t *testing.T) {
	workerPool := NewWorkerAdapter("UTC")

	noop := func(m map[string]interface{}) error { return nil }
	assert.Nil(t, workerPool.Register("noop", noop))
	assert.ErrorIs(t, workerPool.Register("noop", noop), ErrDuplicateHandler)
}
