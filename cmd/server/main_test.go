package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Jamlick126/invoice-manager/internal/config"
)

func TestValidateSecurityConfigAllowsOpenMode(t *testing.T) {
	if err := validateSecurityConfig(config.Config{}); err != nil {
		t.Fatalf("expected open mode to pass, got %v", err)
	}
}

func TestValidateSecurityConfigRejectsWeakValues(t *testing.T) {
	cases := []config.Config{
		{AuthSecret: strings.Repeat("s", 32)},
		{OwnerPassword: "owner-pass"},
		{AuthSecret: "short", OwnerPassword: "owner-pass"},
		{AuthSecret: strings.Repeat("s", 32), OwnerPassword: "abc"},
	}
	for _, cfg := range cases {
		if err := validateSecurityConfig(cfg); err == nil {
			t.Fatalf("expected %+v to be rejected", cfg)
		}
	}
}

func TestValidateSecurityConfigAcceptsStrongValues(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef", OwnerPassword: "owner-pass"})
	if err != nil {
		t.Fatalf("expected strong config to pass, got %v", err)
	}
}

func TestInventoryCommandPrintsSeededProduct(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", config.BackendMemory)
	t.Setenv("SEED_SAMPLE_PRODUCT", "true")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inventory", "--env-file", t.TempDir() + "/missing.env"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var payload struct {
		Items []struct {
			Name      string `json:"name"`
			Remaining int    `json:"remaining"`
		} `json:"items"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if len(payload.Items) != 1 || payload.Items[0].Name != "KEG Black" || payload.Items[0].Remaining != 100 {
		t.Fatalf("unexpected inventory %+v", payload.Items)
	}
}

func TestReceiptCommandRejectsUnknownInvoice(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", config.BackendMemory)
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"receipt", "missing", "--env-file", t.TempDir() + "/missing.env"})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected unknown invoice to fail")
	}
}
