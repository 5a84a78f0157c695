package procedure

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/internal/handler"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/service/procedure"
)

func NewHandler(svc procedure.Servicer) *handler.Resource[model.Procedure, string] {
	return handler.NewResource("/procedures", svc, handler.Codec[model.Procedure, string]{
		ParseKey: handler.StringKey,
		Decode: func(c *gin.Context) (*model.Procedure, error) {
			return handler.BindJSON[model.Procedure](c)
		},
		Encode: func(p *model.Procedure) interface{} { return p },
		SetKey: func(p *model.Procedure, id string) { p.ID = id },
	})
}
