// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// Qmsg is a message taken from a queue. Handle is needed to delete
// the message, or to keep it hidden with a heartbeat.
type Qmsg struct {
	Id, Handle, Body string
}

const maxDeleteKeys = 1000

type ObjMeta struct {
	Name string
	Date time.Time
}

// AwsConn contains the necessary things to interact with S3 and SQS
// in ways useful for the meanfilter pipeline. It is designed to be
// generic enough to swap in other backends easily.
type AwsConn struct {
	// these should be set before running Init(), or left to defaults
	Region string
	Logger *log.Logger

	sess       *session.Session
	s3svc      *s3.S3
	sqssvc     *sqs.SQS
	downloader *s3manager.Downloader
	uploader   *s3manager.Uploader
	filterqurl string
	storageid  string
}

// MinimalInit does the bare minimum to initialise aws services
func (a *AwsConn) MinimalInit() error {
	if a.Region == "" {
		a.Region = defaultAwsRegion
	}
	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	var err error
	a.sess, err = session.NewSession(&aws.Config{
		Region: aws.String(a.Region),
	})
	if err != nil {
		return fmt.Errorf("Failed to set up aws session: %s", err)
	}
	a.s3svc = s3.New(a.sess)
	a.sqssvc = sqs.New(a.sess)
	a.downloader = s3manager.NewDownloader(a.sess)
	a.uploader = s3manager.NewUploader(a.sess)

	a.storageid = storageImages

	return nil
}

// Init initialises aws services, also finding the url needed to
// address the filter queue directly.
func (a *AwsConn) Init() error {
	err := a.MinimalInit()
	if err != nil {
		return err
	}

	a.Logger.Println("Getting filter queue URL")
	result, err := a.sqssvc.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(queueFilter),
	})
	if err != nil {
		return fmt.Errorf("Error getting filter queue URL: %s", err)
	}
	a.filterqurl = *result.QueueUrl

	return nil
}

func (a *AwsConn) CheckQueue(url string, timeout int64) (Qmsg, error) {
	msgResult, err := a.sqssvc.ReceiveMessage(&sqs.ReceiveMessageInput{
		MaxNumberOfMessages: aws.Int64(1),
		VisibilityTimeout:   &timeout,
		WaitTimeSeconds:     aws.Int64(20),
		QueueUrl:            &url,
	})
	if err != nil {
		return Qmsg{}, err
	}

	if len(msgResult.Messages) == 0 {
		return Qmsg{}, nil
	}
	msg := Qmsg{Id: *msgResult.Messages[0].MessageId,
		Handle: *msgResult.Messages[0].ReceiptHandle,
		Body:   *msgResult.Messages[0].Body}
	a.Logger.Println("Message received:", msg.Body)
	return msg, nil
}

// QueueHeartbeat updates the visibility timeout of a message. This
// ensures that the message remains "in flight", meaning that it
// cannot be seen by other processes, but if this process fails the
// timeout will expire and it will go back to being available for
// any other process to retrieve and process.
//
// SQS only allows messages to be "in flight" for up to 12 hours, so
// this will detect if the request for an update to visibility timeout
// fails, and if so will attempt to find the message on the queue, and
// return it, as the handle will have changed.
func (a *AwsConn) QueueHeartbeat(msg Qmsg, qurl string, duration int64) (Qmsg, error) {
	_, err := a.sqssvc.ChangeMessageVisibility(&sqs.ChangeMessageVisibilityInput{
		ReceiptHandle:     &msg.Handle,
		QueueUrl:          &qurl,
		VisibilityTimeout: &duration,
	})
	if err == nil {
		return Qmsg{}, nil
	}

	aerr, ok := err.(awserr.Error)
	if !ok || aerr.Code() != "InvalidParameterValue" {
		return Qmsg{}, fmt.Errorf("Heartbeat error updating queue duration: %s", err)
	}

	// Make the message visible again so it can be received with a
	// new handle.
	_, _ = a.sqssvc.ChangeMessageVisibility(&sqs.ChangeMessageVisibilityInput{
		ReceiptHandle:     &msg.Handle,
		QueueUrl:          &qurl,
		VisibilityTimeout: aws.Int64(0),
	})

	for i := 0; i < int(duration)*5; i++ {
		msgResult, err := a.sqssvc.ReceiveMessage(&sqs.ReceiveMessageInput{
			MaxNumberOfMessages: aws.Int64(10),
			VisibilityTimeout:   &duration,
			WaitTimeSeconds:     aws.Int64(1),
			QueueUrl:            &qurl,
		})
		if err != nil {
			return Qmsg{}, fmt.Errorf("Heartbeat error looking for message to update heartbeat: %s", err)
		}
		for _, m := range msgResult.Messages {
			if *m.MessageId == msg.Id {
				return Qmsg{
					Id:     *m.MessageId,
					Handle: *m.ReceiptHandle,
					Body:   *m.Body,
				}, nil
			}
		}
		// WaitTimeSeconds has already applied if nothing was received
		if len(msgResult.Messages) > 0 {
			time.Sleep(time.Second)
		}
	}
	return Qmsg{}, errors.New("Heartbeat error failed to find message to update heartbeat")
}

// GetQueueDetails gets the number of in progress and available
// messages for a queue. These are returned as strings.
func (a *AwsConn) GetQueueDetails(url string) (string, string, error) {
	numAvailable := "ApproximateNumberOfMessages"
	numInProgress := "ApproximateNumberOfMessagesNotVisible"
	attrs, err := a.sqssvc.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		AttributeNames: []*string{&numAvailable, &numInProgress},
		QueueUrl:       &url,
	})
	if err != nil {
		return "", "", fmt.Errorf("Failed to get queue attributes: %s", err)
	}
	return *attrs.Attributes[numAvailable], *attrs.Attributes[numInProgress], nil
}

func (a *AwsConn) FilterQueueId() string {
	return a.filterqurl
}

func (a *AwsConn) StorageId() string {
	return a.storageid
}

func (a *AwsConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var names []string
	err := a.s3svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, r := range page.Contents {
			names = append(names, *r.Key)
		}
		return true
	})
	return names, err
}

func (a *AwsConn) ListObjectsWithMeta(bucket string, prefix string) ([]ObjMeta, error) {
	var objs []ObjMeta
	err := a.s3svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, r := range page.Contents {
			objs = append(objs, ObjMeta{Name: *r.Key, Date: *r.LastModified})
		}
		return true
	})
	return objs, err
}

// DeleteObjects deletes a list of objects, in batches of the most
// S3 will delete with one request
func (a *AwsConn) DeleteObjects(bucket string, keys []string) error {
	for len(keys) > 0 {
		n := len(keys)
		if n > maxDeleteKeys {
			n = maxDeleteKeys
		}
		objs := []*s3.ObjectIdentifier{}
		for _, v := range keys[:n] {
			objs = append(objs, &s3.ObjectIdentifier{Key: aws.String(v)})
		}
		_, err := a.s3svc.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3.Delete{
				Objects: objs,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return err
		}
		keys = keys[n:]
	}
	return nil
}

// CreateBucket creates a new S3 bucket
func (a *AwsConn) CreateBucket(name string) error {
	_, err := a.s3svc.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		if ok && (aerr.Code() == s3.ErrCodeBucketAlreadyExists || aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou) {
			a.Logger.Println("Bucket already exists:", name)
		} else {
			return fmt.Errorf("Error creating bucket %s: %v", name, err)
		}
	}
	return nil
}

// CreateQueue creates a new SQS queue
// Note the queue attributes are currently hardcoded; it may make sense
// to specify them as arguments in the future.
func (a *AwsConn) CreateQueue(name string) error {
	_, err := a.sqssvc.CreateQueue(&sqs.CreateQueueInput{
		QueueName: aws.String(name),
		Attributes: map[string]*string{
			"VisibilityTimeout":             aws.String("120"),     // 2 minutes
			"MessageRetentionPeriod":        aws.String("1209600"), // 14 days; max allowed by sqs
			"ReceiveMessageWaitTimeSeconds": aws.String("20"),
		},
	})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		// QueueAlreadyExists is only returned if the existing queue has
		// different attributes; identical requests are ignored by SQS.
		if ok && aerr.Code() == sqs.ErrCodeQueueNameExists {
			return errors.New("Error: Queue already exists but has different attributes:" + name)
		}
		return fmt.Errorf("Error creating queue %s: %v", name, err)
	}
	return nil
}

func (a *AwsConn) AddToQueue(url string, msg string) error {
	_, err := a.sqssvc.SendMessage(&sqs.SendMessageInput{
		MessageBody: &msg,
		QueueUrl:    &url,
	})
	return err
}

func (a *AwsConn) DelFromQueue(url string, handle string) error {
	_, err := a.sqssvc.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      &url,
		ReceiptHandle: &handle,
	})
	return err
}

func (a *AwsConn) Download(bucket string, key string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = a.downloader.Download(f,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    &key,
		})
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

func (a *AwsConn) Upload(bucket string, key string, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = a.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}

func (a *AwsConn) GetLogger() *log.Logger {
	return a.Logger
}

// Log records an item in the with the Logger. Arguments are handled
// as with fmt.Println.
func (a *AwsConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}

// MkPipeline sets up the bucket and queue needed by the pipeline
func (a *AwsConn) MkPipeline() error {
	err := a.CreateBucket(storageImages)
	if err != nil {
		return err
	}
	return a.CreateQueue(queueFilter)
}
