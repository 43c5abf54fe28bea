package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/satriadivo/goshop/config"
	"github.com/satriadivo/goshop/pkg/mailer"
)

const prefetch = 16

func main() {
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false, email worker exiting")
		return
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range deliveries {
			handleDelivery(mg, d)
		}
	}()

	log.Printf("email worker consuming queue=%s", cfg.RabbitMQEmailQueue)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("email worker shutting down")

	// Closing the channel ends the deliveries range; give in-flight sends a
	// moment to finish.
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// sender is the slice of the Mailgun client the worker needs.
type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// handleDelivery sends one job. A failed send is requeued exactly once; a
// redelivered message that fails again is dropped, so a permanently broken
// job cannot hot-loop against the mail provider.
func handleDelivery(s sender, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Printf("drop malformed job: %v", err)
		_ = d.Nack(false, false)
		return
	}

	subject := job.Subject
	if subject == "" {
		subject = mailer.SubjectFor(job.Kind)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.Send(ctx, job.To, subject, job.Text, job.HTML); err != nil {
		if d.Redelivered {
			log.Printf("drop job for %s after retry: %v", job.To, err)
			_ = d.Nack(false, false)
			return
		}
		log.Printf("send to %s failed, requeueing: %v", job.To, err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
