package email

const emailTemplates = `
{{define "welcome"}}
<h2>Olá, {{.Name}}!</h2>
<p>Sua conta na Imovia foi criada com sucesso.</p>
<p>Explore os imóveis disponíveis e salve seus favoritos.</p>
{{end}}

{{define "password_reset"}}
<h2>Olá, {{.Name}}!</h2>
<p>Recebemos um pedido para redefinir sua senha.</p>
<p><a href="{{.ResetURL}}">Clique aqui para criar uma nova senha</a></p>
<p>Se você não fez este pedido, ignore este e-mail.</p>
{{end}}

{{define "lead_notification"}}
<h2>Novo contato no imóvel "{{.ListingTitle}}"</h2>
<p><strong>Nome:</strong> {{.LeadName}}</p>
<p><strong>E-mail:</strong> {{.LeadEmail}}</p>
<p><strong>Telefone:</strong> {{.LeadPhone}}</p>
<p><strong>Mensagem:</strong></p>
<p>{{.LeadMessage}}</p>
{{end}}
`
