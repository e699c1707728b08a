package configs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/services"
	"github.com/trinetrasoft/cloud-kitchen/app/services/auth"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
	"github.com/trinetrasoft/cloud-kitchen/app/services/payment"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/calc"
)

const (
	AuthDemo = "demo"
	AuthJWT  = "jwt"

	PaymentDemo     = "demo"
	PaymentMidtrans = "midtrans"

	EventsLog   = "log"
	EventsAMQP  = "amqp"
	EventsKafka = "kafka"
)

func NewAuthProvider(env ENV, users auth.UserFinder) auth.Provider {
	if env.AuthProvider == AuthJWT {
		return auth.NewJWTProvider(users, env.JWTSecret, env.JWTIssuer, env.JWTTTL)
	}
	zap.S().Warnf("NewAuthProvider: demo authentication active, every request acts as %s", env.DemoUserEmail)
	return auth.NewDemoProvider(users, env.DemoUserEmail)
}

func NewPaymentProvider(env ENV) payment.Provider {
	if env.PaymentProvider == PaymentMidtrans {
		return payment.NewMidtransProvider(payment.MidtransConfig{
			ServerKey:  env.MidtransServerKey,
			ClientKey:  env.MidtransClientKey,
			Production: env.MidtransProdMode,
			FinishURL:  env.AppURL + "/orders",
		})
	}
	return payment.NewDemoProvider()
}

// NewPublisher connects to the configured broker. The log publisher never
// fails, so callers may fall back to it.
func NewPublisher(env ENV) (events.Publisher, error) {
	switch env.EventsBackend {
	case EventsAMQP:
		pub, err := events.NewAMQPPublisher(env.AMQPURL, env.AMQPExchange)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case EventsKafka:
		pub, err := events.NewKafkaPublisher(env.KafkaBrokerList(), env.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case EventsLog, "":
		return events.LogPublisher{}, nil
	}
	return nil, fmt.Errorf("unknown EVENTS_BACKEND %q", env.EventsBackend)
}

func (e ENV) PricingOptions() calc.Options {
	opts := calc.DefaultOptions()
	opts.PlatformFeeRate = e.PlatformFeeRate
	opts.TaxRate = e.TaxRate
	opts.DeliveryFee = e.DeliveryFee
	return opts
}

func (e ENV) MailerConfig() services.Config {
	return services.Config{
		Host:     e.EmailHost,
		Port:     e.EmailPort,
		Username: e.EmailUsername,
		Password: e.EmailPassword,
		From:     e.EmailFrom,
	}
}
