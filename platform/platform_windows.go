package platform

import _ "github.com/gogpu/rx/backend/d2d"
