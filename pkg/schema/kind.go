/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

// ErrorKind classifies a violation.
type ErrorKind string

const (
	KindMissingRequiredField          ErrorKind = "MissingRequiredField"
	KindTypeMismatch                  ErrorKind = "TypeMismatch"
	KindFormatViolation               ErrorKind = "FormatViolation"
	KindEnumViolation                 ErrorKind = "EnumViolation"
	KindCollectionConstraintViolation ErrorKind = "CollectionConstraintViolation"
	KindCrossFieldViolation           ErrorKind = "CrossFieldViolation"
)

// MessageKey selects the message template used for a violation.
type MessageKey string

// Message keys of the built-in predicates and the evaluator.
const (
	KeyRequired   MessageKey = "required"
	KeyFilled     MessageKey = "filled"
	KeyStr        MessageKey = "str"
	KeyInt        MessageKey = "int"
	KeyNumber     MessageKey = "number"
	KeyBool       MessageKey = "bool"
	KeyHash       MessageKey = "hash"
	KeyArray      MessageKey = "array"
	KeyGt         MessageKey = "gt"
	KeyLt         MessageKey = "lt"
	KeyGteq       MessageKey = "gteq"
	KeyLteq       MessageKey = "lteq"
	KeyFormat     MessageKey = "format"
	KeyIncludedIn MessageKey = "included_in"
	KeyMinSize    MessageKey = "min_size"
	KeyMaxSize    MessageKey = "max_size"
	KeyUnique     MessageKey = "unique"

	// KeySuggestion decorates enum messages with the closest allowed value.
	KeySuggestion MessageKey = "suggestion"
)
