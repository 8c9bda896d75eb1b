package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultAWSRegion = "eu-central-1"

	SourceRecord  = "record"
	SourceList    = "list"
	SourceCatalog = "catalog"

	PublisherTwitter  = "twitter"
	PublisherTelegram = "telegram"
	PublisherStdout   = "stdout"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func structErrors(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	res := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			res = append(res, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		res = append(res, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
	}
	return res
}

func joinErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
}
