package history

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/internal/handler"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/service/history"
)

func NewHandler(svc history.Servicer) *handler.Resource[model.PatientHistory, string] {
	return handler.NewResource("/history", svc, handler.Codec[model.PatientHistory, string]{
		ParseKey: handler.StringKey,
		Decode: func(c *gin.Context) (*model.PatientHistory, error) {
			payload, err := handler.BindJSON[model.PatientHistoryPayload](c)
			if err != nil {
				return nil, err
			}
			return payload.PatientHistory()
		},
		Encode: func(h *model.PatientHistory) interface{} {
			return model.NewPatientHistoryPayload(h)
		},
		SetKey: func(h *model.PatientHistory, id string) { h.ID = id },
	})
}
