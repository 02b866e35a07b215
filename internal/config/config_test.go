package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"HTTP_ADDR", "STORE_DRIVER", "ADMIN_EMAILS", "OUTBOX_INTERVAL", "SMTP_PORT", "UPLOAD_DRIVER"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, StoreSpanner, c.StoreDriver)
	assert.Empty(t, c.AdminEmails)
	assert.Equal(t, 5*time.Second, c.JobsConfig.OutboxInterval)
	assert.Equal(t, 587, c.SMTPConfig.Port)
	assert.Equal(t, UploadLocal, c.UploadConfig.Driver)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("ADMIN_EMAILS", " boss@example.com, ,ops@example.com ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("OUTBOX_INTERVAL", "250ms")
	t.Setenv("OUTBOX_BATCH_SIZE", "not-a-number")

	c := Load()
	assert.Equal(t, StoreMemory, c.StoreDriver)
	assert.Equal(t, []string{"boss@example.com", "ops@example.com"}, c.AdminEmails)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaConfig.Brokers)
	assert.Equal(t, 250*time.Millisecond, c.JobsConfig.OutboxInterval)
	assert.Equal(t, 100, c.JobsConfig.OutboxBatchSize)
}
