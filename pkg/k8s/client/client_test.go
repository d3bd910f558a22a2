package client

import (
	"os"
	"path/filepath"
	"testing"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
)

func TestResolveKubeconfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
			t.Fatalf("expected /explicit, got %s", got)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig(""); got != "/from/env" {
			t.Fatalf("expected /from/env, got %s", got)
		}
	})

	t.Run("no config selects in-cluster", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "")
		if got := ResolveKubeconfig(""); got != "" {
			t.Fatalf("expected empty path, got %s", got)
		}
	})

	t.Run("home config", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "")
		path := filepath.Join(home, ".kube", "config")
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("apiVersion: v1\nkind: Config\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := ResolveKubeconfig(""); got != path {
			t.Fatalf("expected %s, got %s", path, got)
		}
	})
}

func TestBuildKubeClient_MissingFile(t *testing.T) {
	_, _, err := BuildKubeClient(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing kubeconfig")
	}
	if !wgerrors.IsCode(err, wgerrors.ErrCodeUnavailable) {
		t.Fatalf("expected %s, got %v", wgerrors.ErrCodeUnavailable, err)
	}
}

func TestBuildKubeClient_Kubeconfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	kubeconfig := `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`
	if err := os.WriteFile(path, []byte(kubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}

	client, config, err := BuildKubeClient(path)
	if err != nil {
		t.Fatalf("BuildKubeClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("expected client")
	}
	if config.Host != "https://127.0.0.1:6443" {
		t.Errorf("expected host https://127.0.0.1:6443, got %s", config.Host)
	}
	if config.UserAgent != "wizgate" {
		t.Errorf("expected user agent wizgate, got %s", config.UserAgent)
	}
}
