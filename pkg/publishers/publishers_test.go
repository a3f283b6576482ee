package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: hook
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: reports-queue
    type: sqs
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/000000000000/reports
      region: us-east-1
      access_key_id: " AKIA "
      secret_access_key: secret
  - id: reports-topic
    type: pubsub
    pubsub:
      project_id: cats
      topic: reports
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "reports-queue" || enabled[1].ID != "reports-topic" {
		t.Fatalf("unexpected enabled publishers %#v", enabled)
	}
	queue, ok := reg.ByID("reports-queue")
	if !ok || queue.SQS.Region != "us-east-1" || queue.SQS.AccessKeyID != "AKIA" {
		t.Fatalf("inline aws settings not decoded: %#v", queue.SQS)
	}
	hook, _ := reg.ByID("hook")
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("http defaults not applied: %#v", hook.HTTP)
	}
}

func TestLoadRegistryAllowsNoPublishers(t *testing.T) {
	reg, err := LoadRegistry(writeFile(t, "publishers.json", `{"publishers": []}`))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Enabled()) != 0 {
		t.Fatalf("expected no publishers")
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	_, err := LoadRegistry(writeFile(t, "publishers.yml", `
publishers:
  - id: hook
    type: http
    http: {url: https://example.com}
  - id: hook
    type: http
    http: {url: https://example.com/2}
`))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  PublisherConfig
	}{
		{name: "missing http block", cfg: PublisherConfig{ID: "h1", Type: TypeHTTP}},
		{name: "sns without topic", cfg: PublisherConfig{ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{AWSConfig: AWSConfig{Region: "eu-west-1"}}}},
		{name: "pubsub without project", cfg: PublisherConfig{ID: "p1", Type: TypePubSub, PubSub: &GCPQueueConfig{Topic: "reports"}}},
		{name: "unknown type", cfg: PublisherConfig{ID: "k1", Type: "kafka"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := validatePublisherConfig(tc.cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
