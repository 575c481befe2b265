package app

import (
	"github.com/vk/modcore/core"
	"github.com/vk/modcore/extensions/audit"
	"github.com/vk/modcore/modules/envreport"
	"github.com/vk/modcore/modules/healthcheck"
	"github.com/vk/modcore/modules/heartbeat"
	"github.com/vk/modcore/modules/print"
	"github.com/vk/modcore/modules/socketio"
)

// moduleCatalog is the definitive list of module bodies compiled into the
// modcore binary. A composition manifest selects them by id.
var moduleCatalog = map[string]core.Creator{
	"print":       print.New,
	"envreport":   envreport.New,
	"heartbeat":   heartbeat.New,
	"healthcheck": healthcheck.New,
	"socketio":    socketio.New,
}

// extensionCatalog is the equivalent list for extension bodies.
var extensionCatalog = map[string]core.ExtensionCreator{
	"audit": audit.New,
}
