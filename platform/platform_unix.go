//go:build linux || darwin

package platform

import _ "github.com/gogpu/rx/backend/cairo"
