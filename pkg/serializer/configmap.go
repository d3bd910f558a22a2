package serializer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
	k8sclient "github.com/openshift-assisted/wizard-gate/pkg/k8s/client"
)

const (
	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "wizgate"

	generatedAtAnnotation = "wizgate.openshift.io/generated-at"
)

// kubeClientFor returns the client used for ConfigMap I/O. Tests replace it.
var kubeClientFor = func(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		c, _, err := k8sclient.GetKubeClient()
		return c, err
	}
	c, _, err := k8sclient.BuildKubeClient(kubeconfig)
	return c, err
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	rest := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q, expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return parts[0], parts[1], nil
}

// ConfigMapWriter serializes values into a Kubernetes ConfigMap, creating it
// when it does not exist.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
}

// NewConfigMapWriter returns a ConfigMapWriter for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() || format == FormatTable {
		format = FormatYAML
	}
	return &ConfigMapWriter{namespace: namespace, name: name, format: format}
}

// WithKubeconfig sets the kubeconfig used to reach the cluster.
func (c *ConfigMapWriter) WithKubeconfig(kubeconfig string) *ConfigMapWriter {
	c.kubeconfig = kubeconfig
	return c
}

// DataKey returns the ConfigMap data key the value is stored under.
func (c *ConfigMapWriter) DataKey() string {
	return "wizgate." + c.format.Extension()
}

// Serialize stores v in the ConfigMap.
func (c *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	var buf bytes.Buffer
	if err := NewWriter(c.format, &buf).Serialize(ctx, v); err != nil {
		return err
	}

	client, err := kubeClientFor(c.kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
	defer cancel()

	cms := client.CoreV1().ConfigMaps(c.namespace)
	cm, err := cms.Get(ctx, c.name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      c.name,
				Namespace: c.namespace,
				Labels:    map[string]string{managedByLabel: managedByValue},
			},
		}
		stamp(cm, c.DataKey(), buf.String())
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s/%s: %w", c.namespace, c.name, err)
		}
	case err != nil:
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", c.namespace, c.name, err)
	default:
		stamp(cm, c.DataKey(), buf.String())
		if _, err := cms.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update ConfigMap %s/%s: %w", c.namespace, c.name, err)
		}
	}

	slog.Debug("wrote ConfigMap",
		"namespace", c.namespace,
		"name", c.name,
		"key", c.DataKey(),
		"bytes", buf.Len())
	return nil
}

func stamp(cm *corev1.ConfigMap, key, data string) {
	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	cm.Data[key] = data
	if cm.Annotations == nil {
		cm.Annotations = map[string]string{}
	}
	cm.Annotations[generatedAtAnnotation] = time.Now().UTC().Format(time.RFC3339)
}

// readConfigMap returns the payload of cm://namespace/name. The wizgate data
// keys are preferred; otherwise the first key in sorted order is used.
func readConfigMap(ctx context.Context, uri, kubeconfig string) ([]byte, error) {
	namespace, name, err := parseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := kubeClientFor(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
	defer cancel()

	cm, err := client.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	for _, key := range []string{"wizgate.json", "wizgate.yaml"} {
		if data, ok := cm.Data[key]; ok {
			return []byte(data), nil
		}
	}

	keys := make([]string, 0, len(cm.Data))
	for k := range cm.Data {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("ConfigMap %s/%s has no data", namespace, name)
	}
	sort.Strings(keys)
	return []byte(cm.Data[keys[0]]), nil
}
