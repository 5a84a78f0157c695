package patient

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/internal/handler"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/service/patient"
)

// NewHandler serves patients under /patients/:mrn. Dates of birth travel
// in canonical YYYY-MM-DD form.
func NewHandler(svc patient.Servicer) *handler.Resource[model.Patient, int] {
	return handler.NewResource("/patients", svc, handler.Codec[model.Patient, int]{
		ParseKey: parseMRN,
		Decode: func(c *gin.Context) (*model.Patient, error) {
			payload, err := handler.BindJSON[model.PatientPayload](c)
			if err != nil {
				return nil, err
			}
			return payload.Patient()
		},
		Encode: func(p *model.Patient) interface{} {
			return model.NewPatientPayload(p)
		},
		SetKey: func(p *model.Patient, mrn int) { p.MRN = mrn },
	})
}

func parseMRN(raw string) (int, error) {
	mrn, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("mrn must be an integer: %w", err)
	}
	return mrn, nil
}
