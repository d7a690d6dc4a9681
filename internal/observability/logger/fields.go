package logger

import (
	"go.uber.org/zap"

	"github.com/dropDatabas3/gymcore/internal/util"
)

// Field evita importar zap en los paquetes que solo arman campos.
type Field = zap.Field

// HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field { return zap.String("method", v) }
func Path(v string) zap.Field { return zap.String("path", v) }
func Status(v int) zap.Field { return zap.Int("status", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// Negocio

// AccountID identifica al tenant (Account) que ejecuta la operación.
func AccountID(v string) zap.Field { return zap.String("account_id", v) }
func UserID(v string) zap.Field { return zap.String("user_id", v) }
func Role(v string) zap.Field { return zap.String("role", v) }
func BranchID(v string) zap.Field { return zap.String("branch_id", v) }
func MemberID(v string) zap.Field { return zap.String("member_id", v) }
func TrainerID(v string) zap.Field { return zap.String("trainer_id", v) }
func PlanID(v string) zap.Field { return zap.String("plan_id", v) }
func SubscriptionID(v string) zap.Field { return zap.String("subscription_id", v) }

// Email y Phone se loguean enmascarados.
func Email(v string) zap.Field { return zap.String("email", util.MaskEmail(v)) }
func Phone(v string) zap.Field { return zap.String("phone", util.MaskPhone(v)) }

// Sistema

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer: controller, service, repository, middleware.
func Layer(v string) zap.Field { return zap.String("layer", v) }
func Err(err error) zap.Field { return zap.Error(err) }

// Datos

func Count(v int) zap.Field { return zap.Int("count", v) }
func ID(v string) zap.Field { return zap.String("id", v) }
func String(key, v string) zap.Field { return zap.String(key, v) }
func Int(key string, v int) zap.Field { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
func Stack() zap.Field { return zap.Stack("stack") }
