// Package constants defines shared application-level constants.
package constants

const (
	// EnvDevelop is the development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal selects the local HTTP publisher for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// NotificationTypeUrgentAlert tags in-app notifications created by alert fan-out.
	NotificationTypeUrgentAlert = "urgent_alert"
	// NotificationTypeMission tags in-app notifications created by mission transitions.
	NotificationTypeMission = "mission"
)
