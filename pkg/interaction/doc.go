// Package interaction implements the explicit messaging message router.
//
// The Server decodes message router requests, dispatches them to the
// classes of a model.Registry and encodes the replies:
//
//	registry := model.NewRegistry(logger)
//	server := interaction.NewServer(registry, interaction.ServerConfig{
//	    Logger:         logger,
//	    ProtocolLogger: log.NewSlogAdapter(logger),
//	})
//
//	reply, err := server.HandleMessage(ctx, request)
//
// Requests whose path cannot be decoded are answered with a path segment
// error. Requests for unknown classes or instances are answered with
// "path destination unknown". Handler errors carrying a wire.StatusError
// are answered with that status; any other handler error is answered with
// "service not supported". The server keeps serving after every error.
//
// # Client Usage
//
// The Client builds requests and decodes replies over any Transport. The
// Server itself is a Transport, which is how tools talk to an in-process
// device:
//
//	client := interaction.NewClient(server)
//
//	var name string
//	err := client.ReadAttribute(ctx, wire.NewPath(0x01, 1, 7), wire.TypeShortString, &name)
//
// Non-success replies are returned as *wire.StatusError.
package interaction
