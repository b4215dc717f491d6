package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@cache.internal:6380/2", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Addr != "cache.internal:6380" || opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt.TLSConfig != nil {
		t.Fatal("plain redis url must not enable TLS")
	}
}

func TestRedisClientOptTLSInsecure(t *testing.T) {
	opt, err := redisClientOpt("rediss://cache.internal:6380", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatalf("expected insecure TLS config, got %+v", opt.TLSConfig)
	}
}

func TestNilClientRefusesToEnqueue(t *testing.T) {
	var c *Client
	if err := c.EnqueueAffidavitGeneration(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Fatal("expected error from unconfigured client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close nil client: %v", err)
	}
}

func TestAffidavitTaskIDIsStable(t *testing.T) {
	id := uuid.New()
	if affidavitTaskID(id) != affidavitTaskID(id) || affidavitTaskID(id) != "affidavit:"+id.String() {
		t.Fatalf("unexpected task id %q", affidavitTaskID(id))
	}
}
