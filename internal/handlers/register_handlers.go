package handlers

import (
	"net/http"

	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all API routes and the request validation rules.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerValidations()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		registerAccountRoutes(api, services.Ledger)
		registerParseRoutes(api, services)
	}
}

// registerValidations adds the txtype rule: a transaction type, when given,
// must be one of the canonical values.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		switch domain.TransactionType(fl.Field().String()) {
		case domain.TypeIncome, domain.TypeExpense, domain.TypeTransfer, domain.TypeUnknown:
			return true
		}
		return false
	})
}
