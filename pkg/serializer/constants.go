package serializer

// URI scheme constants for document sources and output destinations
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap locations.
	// Format: cm://namespace/configmap-name
	ConfigMapURIScheme = "cm://"

	// StdoutURI is the special URI for stdin sources and stdout destinations.
	StdoutURI = "-"
)
