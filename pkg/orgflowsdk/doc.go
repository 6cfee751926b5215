/*
Package orgflowsdk is a client for the orgflow service.

# Client and Session

A Client handles the public endpoints and logs in:

	client := orgflowsdk.NewClient("http://localhost:8080")

	_, err := client.Register(ctx, orgflowsdk.RegisterRequest{Email: email, Name: name, Password: pw})
	session, err := client.Login(ctx, email, pw)

A Session carries the access token for everything else:

	org, err := session.CreateOrganization(ctx, orgflowsdk.CreateOrganizationRequest{Name: "Acme", Slug: "acme"})
	invite, err := session.Invite(ctx, org.ID, orgflowsdk.InviteRequest{Email: "b@example.com", Role: "MEMBER"})

# Live notifications

Session.Stream opens the text/event-stream endpoint. The first event is a
heartbeat; notifications follow as they are created:

	stream, err := session.Stream(ctx)
	defer stream.Close()
	for {
		ev, err := stream.Next()
		if err != nil {
			return err
		}
		if ev.Notification != nil {
			fmt.Println(ev.Notification.Message)
		}
	}

# Errors

Non-2xx responses are returned as *APIError. Use IsCode to test for a
specific failure:

	if orgflowsdk.IsCode(err, orgflowsdk.CodeLastOwner) {
		// transfer ownership first
	}
*/
package orgflowsdk
