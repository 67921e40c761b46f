package uuid

import (
	"strings"

	guuid "github.com/google/uuid"
)

// GenUUID 生成标准36位uuid
func GenUUID() string {
	return guuid.NewString()
}

// GenUUID16 生成16位短id，用于请求链路追踪
func GenUUID16() string {
	s := strings.ReplaceAll(guuid.NewString(), "-", "")
	return s[:16]
}
