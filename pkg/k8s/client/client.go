// Package client builds the Kubernetes clientset used for ConfigMap input and
// output.
package client

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
)

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client built on first use from the
// discovered kubeconfig. Use BuildKubeClient for an explicit kubeconfig.
func GetKubeClient() (*kubernetes.Clientset, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	return cachedClient, cachedConfig, clientErr
}

// ResolveKubeconfig returns the kubeconfig path to use. An explicit path wins,
// then KUBECONFIG, then ~/.kube/config if it exists. An empty result selects
// the in-cluster service account.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates an uncached client from kubeconfig, resolved with
// ResolveKubeconfig.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	kubeconfig = ResolveKubeconfig(kubeconfig)

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, nil, wgerrors.WrapWithContext(wgerrors.ErrCodeUnavailable,
			"failed to build kube config", err, map[string]any{"kubeconfig": kubeconfig})
	}
	config.UserAgent = "wizgate"

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, wgerrors.Wrap(wgerrors.ErrCodeUnavailable, "failed to create kubernetes client", err)
	}

	slog.Debug("kubernetes client created", "host", config.Host, "kubeconfig", kubeconfig)
	return client, config, nil
}
