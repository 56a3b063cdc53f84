package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	// Prefix matches the start of the deployment name, e.g. "mocks/"
	Prefix   string
	Contract string
	// LinkedOnly keeps only linked-data records
	LinkedOnly bool
}
