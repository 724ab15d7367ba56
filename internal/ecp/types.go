package ecp

import "encoding/xml"

// DeviceInfo is the normalized record for /query/device-info. Field names
// follow the device's XML reply; only the commonly present fields are
// mapped.
type DeviceInfo struct {
	XMLName         xml.Name `xml:"device-info" json:"-"`
	UDN             string   `xml:"udn" json:"udn,omitempty"`
	SerialNumber    string   `xml:"serial-number" json:"serialNumber,omitempty"`
	DeviceID        string   `xml:"device-id" json:"deviceId,omitempty"`
	VendorName      string   `xml:"vendor-name" json:"vendorName,omitempty"`
	ModelName       string   `xml:"model-name" json:"modelName,omitempty"`
	ModelNumber     string   `xml:"model-number" json:"modelNumber,omitempty"`
	FriendlyName    string   `xml:"friendly-device-name" json:"friendlyName,omitempty"`
	UserDeviceName  string   `xml:"user-device-name" json:"userDeviceName,omitempty"`
	SoftwareVersion string   `xml:"software-version" json:"softwareVersion,omitempty"`
	NetworkName     string   `xml:"network-name" json:"networkName,omitempty"`
	WifiMAC         string   `xml:"wifi-mac" json:"wifiMac,omitempty"`
	EthernetMAC     string   `xml:"ethernet-mac" json:"ethernetMac,omitempty"`
	PowerMode       string   `xml:"power-mode" json:"powerMode,omitempty"`
	IsTV            bool     `xml:"is-tv" json:"isTv"`
	IsStick         bool     `xml:"is-stick" json:"isStick"`
}

// App is one installed channel as reported by /query/apps, and the active
// app record from /query/active-app.
type App struct {
	ID      string `xml:"id,attr" json:"id"`
	Type    string `xml:"type,attr" json:"type,omitempty"`
	Version string `xml:"version,attr" json:"version,omitempty"`
	Name    string `xml:",chardata" json:"name"`
}

// appList is the wire shape of /query/apps.
type appList struct {
	XMLName xml.Name `xml:"apps"`
	Apps    []App    `xml:"app"`
}

// activeApp is the wire shape of /query/active-app. The home screen
// reports an app element without an id attribute.
type activeApp struct {
	XMLName xml.Name `xml:"active-app"`
	App     *App     `xml:"app"`
}

// mediaPlayer is the wire shape of the media-state query.
type mediaPlayer struct {
	XMLName  xml.Name `xml:"player"`
	State    string   `xml:"state,attr"`
	Position string   `xml:"position"`
	Duration string   `xml:"duration"`
}

// MediaState is the normalized media-state record. Not every device
// supports the query, so failures are reported in-band via Available and
// Error instead of as operation errors.
type MediaState struct {
	Available bool   `json:"available"`
	State     string `json:"state,omitempty"`
	Position  string `json:"position,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Error     string `json:"error,omitempty"`
}
