package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/logger"
)

type AdminController struct {
	seeder Seeder
	log    *logger.Logger
}

func NewAdminController(seeder Seeder, log *logger.Logger) *AdminController {
	return &AdminController{seeder: seeder, log: log}
}

// InitData handles POST /api/admin/init-data. It replaces all data with the
// demo data set, which also resets accounts to the single admin.
func (a *AdminController) InitData(c *gin.Context) {
	if err := a.seeder.InsertInitialData(c.Request.Context()); err != nil {
		respondStoreError(c, a.log, err)
		return
	}
	respondSuccess(c, "initial data inserted")
}
