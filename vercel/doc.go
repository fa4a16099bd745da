// Package vercel runs request/response handlers on the Vercel serverless
// platform.
//
// The platform delivers every invocation as an Event whose body is a JSON
// encoded ProxyRequest. The dispatcher decodes it into a Request, calls the
// handler exactly once and encodes the returned Response as a
// ProxyResponse. Text bodies travel as literal strings and binary bodies as
// base64, as flagged by the encoding field.
//
//	func main() {
//		vercel.Start(vercel.HandlerFunc[string, vercel.TextResponse](
//			func(ctx context.Context, req *vercel.Request[string]) (vercel.TextResponse, error) {
//				return vercel.TextResponse("hello " + req.Body), nil
//			},
//		))
//	}
package vercel
