package cli

import "errors"

var errMissingFormID = errors.New("no form id given and no current form; pass a form id or run `craft forms list`")
