package doctor

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/internal/handler"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/service/doctor"
)

func NewHandler(svc doctor.Servicer) *handler.Resource[model.Doctor, string] {
	return handler.NewResource("/doctors", svc, handler.Codec[model.Doctor, string]{
		ParseKey: handler.StringKey,
		Decode: func(c *gin.Context) (*model.Doctor, error) {
			return handler.BindJSON[model.Doctor](c)
		},
		Encode: func(d *model.Doctor) interface{} { return d },
		SetKey: func(d *model.Doctor, id string) { d.ID = id },
	})
}
