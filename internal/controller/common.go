package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径参数里的数字 ID，非法时直接写 400 并返回 0
func parseID(ctx *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(400, gin.H{"code": 400, "message": "参数 " + name + " 非法"})
		return 0
	}
	return id
}

func ok(ctx *gin.Context, data interface{}) {
	ctx.JSON(200, gin.H{"code": 200, "message": "ok", "data": data})
}

func fail(ctx *gin.Context, status int, err error) {
	ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
}
