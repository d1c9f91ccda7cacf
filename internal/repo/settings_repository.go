package repo

// Store settings keys written by the settings endpoints.
const (
	SettingStoreName    = "store_name"
	SettingStoreAddress = "store_address"
	SettingGCashQRURL   = "epayment_gcash_qr_url"
	SettingMayaQRURL    = "epayment_maya_qr_url"
)

// Defaults returned when a setting has never been written.
var DefaultSettings = map[string]string{
	SettingGCashQRURL: "/gcash-qr.png",
	SettingMayaQRURL:  "/maya-qr.png",
}

// SettingsRepository is a small key-value store for store configuration.
type SettingsRepository interface {
	GetAll() (map[string]string, error)
	Set(key, value string) error
}
