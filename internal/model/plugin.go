package model

type GetPluginsRequest struct {
	Category string `form:"category" json:"category"`
}

type GetPluginsResponse struct {
	Plugins []Plugin `json:"plugins"`
}

type GetPluginRequest struct {
	PluginID string `form:"plugin_id" json:"plugin_id"`
}

type GetPluginResponse Plugin

type InstallPluginRequest struct {
	PluginID string `json:"plugin_id"`
}

type InstallPluginResponse struct{}

type GetInstalledPluginsRequest struct{}

type GetInstalledPluginsResponse struct {
	Plugins []Plugin `json:"plugins"`
}
