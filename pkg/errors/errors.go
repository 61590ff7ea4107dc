// Package errors はgbdtkernelのエラー型と警告の通知経路をまとめたパッケージです。
//
// カーネルへの入力が契約に反する場合（空のパーセンタイル水準、重みの合計が0、
// 全サンプルが欠損のスライスなど）は、ここで定義する型のエラーとして
// 直接の呼び出し元へ返します。ログに書いて処理を続けることはしません。
// どのコンストラクタもcockroachdb/errorsでスタックトレースを付与するため、
// `%+v` で発生箇所まで追跡できます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// 警告は処理を止めない通知です（未知のパラメータ名など）。
// pkg/logはSetZerologWarnFuncで構造化ログへの転送を登録します。
var warnings = struct {
	sync.Mutex
	handler func(error)
	forward func(error)
}{
	handler: func(w error) { log.Printf("gbdtkernel: warning: %v", w) },
}

// SetWarningHandler は警告の既定の出力先を差し替えます。nilを渡すと警告は捨てられます。
func SetWarningHandler(handler func(w error)) {
	warnings.Lock()
	warnings.handler = handler
	warnings.Unlock()
}

// SetZerologWarnFunc は警告の転送先を登録します。登録中はSetWarningHandlerの
// ハンドラより優先されます。pkg/logがimportの循環を避けるためにこの経路を使います。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warnings.Lock()
	warnings.forward = warnFunc
	warnings.Unlock()
}

// Warn は警告を1件通知します。
func Warn(w error) {
	warnings.Lock()
	defer warnings.Unlock()
	switch {
	case warnings.forward != nil:
		warnings.forward(w)
	case warnings.handler != nil:
		warnings.handler(w)
	}
}

// ParameterWarning は設定パラメータが無視された、または読み替えられたことを表す警告です。
type ParameterWarning struct {
	Param  string
	Reason string
}

func (w *ParameterWarning) Error() string {
	return fmt.Sprintf("parameter %q ignored: %s", w.Param, w.Reason)
}

// MarshalZerologObject はzerolog.LogObjectMarshalerの実装です。
func (w *ParameterWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "ParameterWarning").
		Str("param", w.Param).
		Str("reason", w.Reason)
}

// NewParameterWarning はParameterWarningを作成します。
func NewParameterWarning(param, reason string) *ParameterWarning {
	return &ParameterWarning{Param: param, Reason: reason}
}

// DimensionError は並行する配列（値と重み、行列の行数と重みなど）の長さが
// 一致しないことを表します。
type DimensionError struct {
	Op       string
	What     string // 長さが合わなかった引数の名前
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("gbdtkernel: %s: %s has length %d, want %d", e.Op, e.What, e.Got, e.Expected)
}

// MarshalZerologObject はzerolog.LogObjectMarshalerの実装です。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "DimensionError").
		Str("operation", e.Op).
		Str("argument", e.What).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

// NewDimensionError はスタックトレース付きのDimensionErrorを返します。
func NewDimensionError(op, what string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, What: what, Expected: expected, Got: got})
}

// ValidationError は設定パラメータの値が許容範囲外であることを表します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gbdtkernel: invalid %s: %s (got %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerolog.LogObjectMarshalerの実装です。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValidationError").
		Str("param", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

// NewValidationError はスタックトレース付きのValidationErrorを返します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError はカーネルの引数が契約に反することを表します。
// 空の水準列、欠損ビンと等しい分割値、16ビットに収まらないビン番号などです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gbdtkernel: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject はzerolog.LogObjectMarshalerの実装です。
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValueError").
		Str("operation", e.Op).
		Str("message", e.Message)
}

// NewValueError はスタックトレース付きのValueErrorを返します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// NewValueErrorf はメッセージを書式化してValueErrorを返します。
func NewValueErrorf(op, format string, args ...interface{}) error {
	return NewValueError(op, fmt.Sprintf(format, args...))
}

// NumericalInstabilityError は分母や集計値にNaN・Infが現れたことを表します。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int // 特徴量番号など。該当しない場合は0
}

// maxReportedValues はエラーメッセージに載せる値の上限です。
const maxReportedValues = 5

func (e *NumericalInstabilityError) Error() string {
	shown := e.Values
	suffix := ""
	if len(shown) > maxReportedValues {
		shown = shown[:maxReportedValues]
		suffix = ", ..."
	}
	return fmt.Sprintf("gbdtkernel: numerical instability detected in %s at iteration %d. Values: %v%s",
		e.Operation, e.Iteration, shown, suffix)
}

// MarshalZerologObject はzerolog.LogObjectMarshalerの実装です。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "NumericalInstabilityError").
		Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("iteration", e.Iteration)
}

// NewNumericalInstabilityError はスタックトレース付きのNumericalInstabilityErrorを返します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	})
}

// 以下はcockroachdb/errorsの薄いラッパーです。呼び出し側がこのパッケージだけを
// importすれば済むようにしています。

// Is はerrors.Isです。
func Is(err, target error) bool { return errors.Is(err, target) }

// As はerrors.Asです。
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Wrap はerrをメッセージ付きで包みます。
func Wrap(err error, message string) error { return errors.Wrap(err, message) }

// Wrapf はerrを書式化したメッセージ付きで包みます。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New はスタックトレース付きのエラーを作成します。
func New(message string) error { return errors.New(message) }

// Newf は書式化したメッセージでNewと同じことをします。
func Newf(format string, args ...interface{}) error { return errors.Newf(format, args...) }

// WithStack はerrに呼び出し位置のスタックトレースを付与します。
func WithStack(err error) error { return errors.WithStack(err) }

var (
	// ErrEmptyData は集計対象の値が1つも無いことを表します。
	ErrEmptyData = New("empty data")

	// ErrAllMissing はOnSplitExcludeMissingに全サンプルが欠損のスライスが渡されたことを表します。
	// インデックス配列は有効な置換のままですが、分割として使ってはいけません。
	ErrAllMissing = New("every sample in the slice is missing")
)
