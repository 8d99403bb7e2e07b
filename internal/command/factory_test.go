package command

import (
	"context"
	"testing"

	"merchdash/internal/api"
	"merchdash/internal/metrics"
	"merchdash/internal/view"

	"github.com/sirupsen/logrus"
)

func TestNewFactory(t *testing.T) {
	client, err := api.NewClient("http://localhost:8080/api/v1")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	renderer := view.NewRenderer(nil)
	stats := metrics.NewFetchStats()
	logger := logrus.New()
	controller := &fakeController{}

	factory := NewFactory(context.Background(), client, renderer, stats, logger, controller)

	if factory == nil {
		t.Fatal("NewFactory returned nil")
	}
	if factory.client != client {
		t.Error("client not set correctly")
	}
	if factory.view != renderer {
		t.Error("renderer not set correctly")
	}
	if factory.stats != stats {
		t.Error("stats not set correctly")
	}
	if factory.controller != controller {
		t.Error("controller not set correctly")
	}
}

func TestCreateCommands(t *testing.T) {
	client, err := api.NewClient("http://localhost:8080/api/v1")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	factory := NewFactory(context.Background(), client, view.NewRenderer(nil), metrics.NewFetchStats(), nil, &fakeController{})

	want := []string{
		"merchants", "merchant", "add-merchant", "edit-merchant", "transactions",
		"analytics", "reports", "charts", "drilldown", "feed", "dbstats",
	}
	commands := factory.Commands()
	if len(commands) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(commands))
	}
	seen := map[string]bool{}
	for i, c := range commands {
		if c.Name() != want[i] {
			t.Errorf("Expected command %d to be %s, got %s", i, want[i], c.Name())
		}
		if c.Synopsis() == "" {
			t.Errorf("Command %s has no synopsis", c.Name())
		}
		if seen[c.Name()] {
			t.Errorf("Duplicate command %s", c.Name())
		}
		seen[c.Name()] = true
	}

	if _, ok := factory.CreateFeedCommand().(*FeedCommand); !ok {
		t.Error("CreateFeedCommand did not return FeedCommand")
	}
	if tc, ok := factory.CreateTransactionsCommand().(*TransactionsCommand); !ok {
		t.Error("CreateTransactionsCommand did not return TransactionsCommand")
	} else if tc.Log != nil {
		t.Error("Expected no log entry without a logger")
	}
}
