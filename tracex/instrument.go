package tracex

import (
	"context"

	"github.com/stashkit/x/loggerx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const ComponentNameSeparator = "."

func ComponentName(packageName, structName string) string {
	return packageName + ComponentNameSeparator + structName
}

/*
This allows us to easily instrument our code with a unify way and reduce the boilerplate of instrumentation. Reduce the possibles errors. `span.End()` must be called at the end of using the span.

	const myComponentName = "xpackage.xStruct"

	func (xs *xStruct) instrument(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, *loggerx.Logger) {
	    return tracex.Instrument(ctx, xs.l, xs.tracer, myComponentName, name, opts...)
	}

	func (xs *xStruct) process(ctx context.Context) error {
		ctx, span, l := xs.instrument(ctx, "process")
		defer span.End()
	}
*/
func Instrument(ctx context.Context, l *loggerx.Logger, tracer trace.Tracer, componentName string, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, *loggerx.Logger) {
	fullComponentName := ComponentName(componentName, name)
	ctx, span := tracer.Start(ctx, fullComponentName, opts...)
	il := l.
		WithSpanStartOptions(opts...).
		WithFields(attribute.Key("component").String(fullComponentName))
	return ctx, span, il
}
