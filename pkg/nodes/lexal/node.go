package lexal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/protocol"
	"github.com/mitchellh/mapstructure"
)

// DigitsRequiredMessage is recorded when str_field does not hold an integer.
const DigitsRequiredMessage = "Должны быть введены цифры в текстовое поле!"

// maxExactInt is the largest integer a float64 operand is guaranteed to represent exactly.
const maxExactInt = 1 << 53

var errMissingProperty = errors.New("missing property")

// Node implements protocol.Node for both lexal descriptors.
type Node struct {
	nodeType *models.NodeType
	logger   *slog.Logger
}

// operands are the values read after str_field has been parsed.
type operands struct {
	Int    float64 `mapstructure:"int_field"`
	Change bool    `mapstructure:"change_field"`
}

// NewNode creates the base lexal node.
func NewNode(logger *slog.Logger) *Node {
	return newNode(NodeType(), logger)
}

// NewExtendedNode creates the lexal node exposing the conditional properties.
func NewExtendedNode(logger *slog.Logger) *Node {
	return newNode(ExtendedNodeType(), logger)
}

func newNode(nodeType *models.NodeType, logger *slog.Logger) *Node {
	if logger == nil {
		logger = slog.Default()
	}

	return &Node{
		nodeType: nodeType,
		logger:   logger.With("node_type_id", nodeType.ID, "node_name", nodeType.Name),
	}
}

// Info returns the node descriptor.
func (n *Node) Info() *models.NodeType {
	return n.nodeType
}

// Execute adds the parsed str_field to int_field and records {"result": sum}.
func (n *Node) Execute(ctx context.Context, run *models.RunContext) (*models.RunContext, error) {
	result, err := Compute(run.Properties)
	if err == nil {
		err = run.SaveResult(ctx, map[string]any{"result": result})
		if err != nil {
			err = protocol.NewUnexpectedError(err)
		}
	}

	if err == nil {
		run.State = models.RunStateComplete

		return run, nil
	}

	n.logger.WarnContext(ctx, "Node execution failed", "error", err, "run_id", run.ID)

	run.State = models.RunStateError

	saveErr := run.SaveError(ctx, err.Error())
	if saveErr != nil {
		return run, fmt.Errorf("failed to save error of run %s: %w", run.ID, saveErr)
	}

	return run, nil
}

// Compute returns str_field + int_field, as text when change_field is set.
func Compute(properties map[string]any) (any, error) {
	digits, err := parseDigits(properties)
	if err != nil {
		return nil, err
	}

	var ops operands

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnset: true,
		Result:     &ops,
	})
	if err != nil {
		return nil, protocol.NewUnexpectedError(err)
	}

	err = decoder.Decode(properties)
	if err != nil {
		return nil, protocol.NewUnexpectedError(err)
	}

	sum := add(digits, ops.Int)

	if ops.Change {
		return stringify(sum), nil
	}

	return sum, nil
}

// parseDigits reads str_field as an integer of any size.
func parseDigits(properties map[string]any) (*big.Int, error) {
	raw, ok := properties[PropertyStr]
	if !ok {
		return nil, protocol.NewUnexpectedError(fmt.Errorf("%w '%s'", errMissingProperty, PropertyStr))
	}

	text, ok := raw.(string)
	if !ok {
		return nil, protocol.NewValueError(DigitsRequiredMessage, fmt.Errorf("%s is %T, not text", PropertyStr, raw))
	}

	text = strings.TrimSpace(text)

	value, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return big.NewInt(value), nil
	}

	if errors.Is(err, strconv.ErrRange) {
		if digits, ok := new(big.Int).SetString(text, 10); ok {
			return digits, nil
		}
	}

	return nil, protocol.NewValueError(DigitsRequiredMessage, err)
}

// add keeps the sum integral when the numeric operand is a whole number.
// Integral sums are int64 when they fit and *big.Int otherwise.
func add(digits *big.Int, number float64) any {
	if number == math.Trunc(number) && math.Abs(number) <= maxExactInt {
		sum := new(big.Int).Add(digits, big.NewInt(int64(number)))
		if sum.IsInt64() {
			return sum.Int64()
		}

		return sum
	}

	approx, _ := new(big.Float).SetInt(digits).Float64()

	return approx + number
}

func stringify(sum any) string {
	switch v := sum.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case *big.Int:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
